package maas

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Machine is one physical host as reported by the MaaS machines endpoint.
// Fields map the subset of the wire record the report needs; anything else
// in the payload is ignored.
type Machine struct {
	Hostname      string   `json:"hostname"`
	SystemID      string   `json:"system_id"`
	StatusName    string   `json:"status_name"`
	StatusMessage string   `json:"status_message"`
	Tags          []string `json:"tag_names"`
	Owner         Owner    `json:"owner"`
}

// User is a MaaS account. The report only lists users to prove the session
// works, but the records decode fully for callers that want them.
type User struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsSuperUser bool   `json:"is_superuser"`
}

// Owner identifies the user a machine is allocated to. An empty Username
// means the machine is unowned.
type Owner struct {
	Username string `json:"username"`
}

// UnmarshalJSON accepts the two shapes MaaS has used on the wire for a
// machine's owner: a bare username string and a user object, plus null for
// unowned machines.
func (o *Owner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*o = Owner{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &o.Username)
	}
	var user struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("decode machine owner: %w", err)
	}
	o.Username = user.Username
	return nil
}
