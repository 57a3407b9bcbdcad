package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vidyarthi-io/scholarseek/internal/store"
)

// profileOptions holds the applicant profile flags shared by the search,
// browse and interact commands. Defaults mirror the anonymous profile.
type profileOptions struct {
	category  string
	state     string
	income    int
	education string
	gender    string
}

func addProfileFlags(cmd *cobra.Command, opts *profileOptions) {
	cmd.Flags().StringVar(&opts.category, "category", store.DefaultCategory,
		"Reservation category (SC, ST, OBC, General, Minority, EWS, PWD)")
	cmd.Flags().StringVar(&opts.state, "state", store.DefaultState,
		"State of domicile")
	cmd.Flags().IntVar(&opts.income, "income", store.DefaultIncome,
		"Annual family income in rupees")
	cmd.Flags().StringVar(&opts.education, "education", "",
		"Education level (e.g. undergraduate, class 10)")
	cmd.Flags().StringVar(&opts.gender, "gender", store.DefaultGender,
		"Gender (Male, Female, Any)")
}

func (o profileOptions) profile() *store.Profile {
	income := o.income
	return &store.Profile{
		Category:  o.category,
		State:     o.state,
		Income:    &income,
		Education: o.education,
		Gender:    o.gender,
	}
}
