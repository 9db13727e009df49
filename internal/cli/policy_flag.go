package cli

import (
	"github.com/alexanderramin/reflow/internal/scheduler"
	"github.com/spf13/pflag"
)

// policyValue is a pflag.Value that only accepts known maintenance policies.
type policyValue scheduler.MaintenancePolicy

var _ pflag.Value = (*policyValue)(nil)

func (p *policyValue) String() string { return string(*p) }

func (p *policyValue) Set(s string) error {
	policy, err := scheduler.ParseMaintenancePolicy(s)
	if err != nil {
		return err
	}
	*p = policyValue(policy)
	return nil
}

func (p *policyValue) Type() string { return "policy" }

// addPolicyFlag registers --policy on flags, defaulting to def.
func addPolicyFlag(flags *pflag.FlagSet, def scheduler.MaintenancePolicy) *policyValue {
	if def == "" {
		def = scheduler.PolicyResume
	}
	v := policyValue(def)
	flags.Var(&v, "policy", "Maintenance policy: resume keeps work done before a window, restart redoes it (resume|restart)")
	return &v
}
