package slot

import "spendly/internal/model"

// Tax intake field keys.
const (
	FieldRent            = "rent"
	FieldHealthInsurance = "health_insurance"
	FieldLoans           = "loans"
)

// TaxIntake collects the deductions the tax comparison needs.
var TaxIntake = Schema{
	ID: model.FlowTaxIntake,
	Fields: []Field{
		{
			Key:         FieldRent,
			Prompt:      "Do you pay rent? If yes, how much per month and which city?",
			Type:        TypeNumber,
			Description: "monthly rent paid in rupees, 0 if the user pays no rent",
		},
		{
			Key:         FieldHealthInsurance,
			Prompt:      "Do you pay for health insurance premiums? If yes, how much per year?",
			Type:        TypeNumber,
			Description: "annual health insurance premium in rupees, 0 if none",
		},
		{
			Key:         FieldLoans,
			Prompt:      "Do you have any home loan or education loan? If yes, EMI and amount?",
			Type:        TypeNumber,
			Description: "approximate yearly interest paid on home or education loans in rupees, 0 if no loan",
		},
	},
}

// Schemas indexes every flow by id.
var Schemas = map[string]Schema{
	TaxIntake.ID: TaxIntake,
}
