package document

const (
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryRent      = "Rent"
	CategoryEMI       = "EMI"
	CategoryOthers    = "Others"

	// emergencyFundShare estimates savings on hand from statement income.
	emergencyFundShare = 0.25

	defaultMaxLLMLookups = 50
	categoryCacheSize    = 512
)

// keywordCategories is matched in order against the lowercased description.
var keywordCategories = []struct {
	keyword  string
	category string
}{
	{"zomato", CategoryFood},
	{"swiggy", CategoryFood},
	{"uber", CategoryTransport},
	{"ola", CategoryTransport},
	{"rent", CategoryRent},
	{"emi", CategoryEMI},
}

const categorySystem = "You are a classification engine for bank transactions."

const categoryPrompt = `You are categorizing a single bank transaction.

Description: %s
Amount: %.2f

Return only a concise category such as:
Food, Groceries, Transport, Rent, EMI, Shopping, Salary, Utilities, Others.`

var (
	descriptionHeaders = []string{"Description", "desc"}
	amountHeaders      = []string{"Amount", "amount"}
	dateHeaders        = []string{"Date", "date"}
)
