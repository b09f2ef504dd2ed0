package report

import (
	"regexp"
	"strings"

	"github.com/mgriffin78/maas/internal/maas"
)

// statusReady is the exact lifecycle status of a provisioned, idle machine.
// The match is deliberately case-sensitive: MaaS emits "Ready" verbatim, and
// anything else is some other state.
const statusReady = "Ready"

// dcopsPattern matches tags raised by data-center operations, e.g. DCOPS-4411.
var dcopsPattern = regexp.MustCompile(`(?i)^DCOPS-`)

// Classification groups the inventory into the three report sections.
// Failed membership is exclusive; a Ready machine can sit in both Available
// and PotentialIssue at once.
type Classification struct {
	Available      []maas.Machine
	PotentialIssue []maas.Machine
	Failed         []maas.Machine
}

// Classify partitions machines by lifecycle status and tags. It is pure and
// deterministic, and preserves input order within each section. Machines that
// are neither failed nor exactly Ready land in no section.
func Classify(machines []maas.Machine) Classification {
	var c Classification
	for _, m := range machines {
		status := strings.ToLower(m.StatusName)
		if strings.Contains(status, "failed") || strings.Contains(status, "broken") {
			c.Failed = append(c.Failed, m)
			continue
		}
		if m.StatusName != statusReady {
			continue
		}
		if hasAvailableTag(m.Tags) {
			c.Available = append(c.Available, m)
		}
		if hasDCOPSTag(m.Tags) {
			c.PotentialIssue = append(c.PotentialIssue, m)
		}
	}
	return c
}

func hasAvailableTag(tags []string) bool {
	for _, tag := range tags {
		if strings.ToLower(tag) == "available" {
			return true
		}
	}
	return false
}

func hasDCOPSTag(tags []string) bool {
	for _, tag := range tags {
		if dcopsPattern.MatchString(tag) {
			return true
		}
	}
	return false
}
