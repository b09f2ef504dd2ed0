package maas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/juju/gomaasapi/v2"
)

// ConnectArgs carries everything needed to open a MaaS API session.
type ConnectArgs struct {
	BaseURL    string
	APIKey     string
	APIVersion string
	Stdout     io.Writer
}

// Session is an authenticated handle on one MaaS controller.
type Session struct {
	root *gomaasapi.MAASObject
}

// Connect opens an OAuth-signed session against the controller and probes it
// with a user listing, so a bad URL or key fails here rather than mid-report.
func Connect(ctx context.Context, args ConnectArgs) (*Session, error) {
	if args.BaseURL == "" {
		return nil, errors.New("MaaS base URL is required")
	}
	if args.APIKey == "" {
		return nil, errors.New("MaaS API key is required")
	}
	if args.APIVersion == "" {
		args.APIVersion = "2.0"
	}
	if args.Stdout == nil {
		args.Stdout = os.Stdout
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fmt.Fprintf(args.Stdout, "--> Connecting to MaaS at %s...\n", args.BaseURL)

	versioned := gomaasapi.AddAPIVersionToURL(args.BaseURL, args.APIVersion)
	client, err := gomaasapi.NewAuthenticatedClient(versioned, args.APIKey)
	if err != nil {
		return nil, fmt.Errorf("connecting to MaaS: %w", err)
	}

	session := &Session{root: gomaasapi.NewMAAS(*client)}
	if _, err := session.ListUsers(ctx); err != nil {
		return nil, fmt.Errorf("connecting to MaaS: %w", err)
	}

	fmt.Fprintln(args.Stdout, "--> Successfully connected to MaaS.")
	return session, nil
}

// ListUsers fetches the controller's user accounts. Connect uses it as the
// reachability probe; only the error matters there.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.get(ctx, "users", &users); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// ListMachines fetches the complete machine inventory in one call. There is
// no pagination and no retry: a failure aborts the caller's run.
func (s *Session) ListMachines(ctx context.Context) ([]Machine, error) {
	var machines []Machine
	if err := s.get(ctx, "machines", &machines); err != nil {
		return nil, fmt.Errorf("fetching machines from MaaS: %w", err)
	}
	return machines, nil
}

// get performs one GET on an API endpoint and decodes the response into
// dest. The underlying client is contextless, so ctx is only honored before
// the call is issued.
func (s *Session) get(ctx context.Context, endpoint string, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	obj, err := s.root.GetSubObject(endpoint).CallGet("", url.Values{})
	if err != nil {
		return err
	}
	raw, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}
