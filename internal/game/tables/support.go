package tables

import (
	"fmt"
	"strings"
)

// SupportKind identifies one of the two fixed support packages.
type SupportKind string

const (
	SupportJob        SupportKind = "JOB"
	SupportInvestment SupportKind = "INVESTMENT"
)

// ParseSupportKind converts user input into a SupportKind.
func ParseSupportKind(s string) (SupportKind, error) {
	switch SupportKind(strings.ToUpper(strings.TrimSpace(s))) {
	case SupportJob:
		return SupportJob, nil
	case SupportInvestment:
		return SupportInvestment, nil
	default:
		return "", fmt.Errorf("unknown support kind %q", s)
	}
}

// SupportPackage describes what a support transfer costs and yields.
//
// A JOB benefit is credited to the receiver's pending support bonus and paid
// out at their next paycheck. An INVESTMENT benefit is credited to cash
// immediately. The giver always gains GiverPassiveIncome.
type SupportPackage struct {
	Kind               SupportKind `json:"kind"`
	Title              string      `json:"title"`
	CostToGiver        int         `json:"cost_to_giver"`
	BenefitToReceiver  int         `json:"benefit_to_receiver"`
	GiverPassiveIncome int         `json:"giver_passive_income"`
	Deferred           bool        `json:"deferred"`
}

var supportPackages = map[SupportKind]SupportPackage{
	SupportJob: {
		Kind:               SupportJob,
		Title:              "Offer a job",
		CostToGiver:        1000,
		BenefitToReceiver:  800,
		GiverPassiveIncome: 200,
		Deferred:           true,
	},
	SupportInvestment: {
		Kind:               SupportInvestment,
		Title:              "Co-invest",
		CostToGiver:        5000,
		BenefitToReceiver:  3000,
		GiverPassiveIncome: 1000,
		Deferred:           false,
	},
}

// SupportKinds lists the support kinds in a stable order.
func SupportKinds() []SupportKind {
	return []SupportKind{SupportJob, SupportInvestment}
}

// LookupSupport returns the package for a kind.
func LookupSupport(kind SupportKind) (SupportPackage, bool) {
	p, ok := supportPackages[kind]
	return p, ok
}
