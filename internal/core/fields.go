package core

import (
	"regexp"
	"strings"
)

// FieldType represents the expected data type for a user attribute.
type FieldType int

const (
	FieldText FieldType = iota
	FieldDate
)

// FieldSpec defines the binding and validation rules for one user attribute.
// The same table drives CSV header binding, positional binding and JSON
// validation.
type FieldSpec struct {
	Name       string              // CSV header and JSON name
	Label      string              // Human-readable name used in messages
	DBColumn   string              // Database column name
	Type       FieldType           // Expected data type
	Required   bool                // Blank values are rejected
	MaxLen     int                 // Maximum length in characters (0 = unlimited)
	Pattern    *regexp.Regexp      // Value must match when non-blank
	Message    string              // Message reported when MaxLen, Pattern or Type fails
	Normalizer func(string) string // Optional transformation applied before validation
}

var (
	stateRegex   = regexp.MustCompile(`^[A-Z]{2}$`)
	zipCodeRegex = regexp.MustCompile(`^\d{5}$`)
	phoneRegex   = regexp.MustCompile(`^(\+\d{1,2}\s?)?(\()?(\d{3})(\))?[-\s]?(\d{3})[-\s]?(\d{4})$`)
	emailRegex   = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)
	dobRegex     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	ssnRegex     = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	pictureRegex = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
)

// UserFields lists the user attributes in positional CSV order.
var UserFields = []FieldSpec{
	{Name: "firstName", Label: "First Name", DBColumn: "first_name", Required: true, MaxLen: 50,
		Message: "First Name cannot exceed 50 characters"},
	{Name: "lastName", Label: "Last Name", DBColumn: "last_name", Required: true, MaxLen: 50,
		Message: "Last Name cannot exceed 50 characters"},
	{Name: "address", Label: "Address", DBColumn: "address", Required: true, MaxLen: 100,
		Message: "Address cannot exceed 100 characters"},
	{Name: "city", Label: "City", DBColumn: "city", Required: true, MaxLen: 50,
		Message: "City cannot exceed 50 characters"},
	{Name: "state", Label: "State", DBColumn: "state", Required: true, Pattern: stateRegex,
		Message: "Invalid state abbreviation. State must be in the form of XX", Normalizer: NormalizeUsState},
	{Name: "zipCode", Label: "Zip Code", DBColumn: "zip_code", Required: true, Pattern: zipCodeRegex,
		Message: "Invalid zip code. Zip code must be in the form of 99999"},
	{Name: "phone", Label: "Phone", DBColumn: "phone", Pattern: phoneRegex,
		Message: "Invalid phone number. Phone number must be in 999-999-9999 or (999) 999-9999 format."},
	{Name: "email", Label: "Email", DBColumn: "email", Required: true, MaxLen: 100, Pattern: emailRegex,
		Message: "Invalid email address"},
	{Name: "dob", Label: "Date of Birth", DBColumn: "dob", Type: FieldDate, Required: true, Pattern: dobRegex,
		Message: "Invalid date of birth. Date of birth must be in the form of mm/dd/yyyy"},
	{Name: "ssn", Label: "SSN", DBColumn: "ssn", Required: true, Pattern: ssnRegex,
		Message: "Invalid social security number. Expected 999-99-9999 format"},
	{Name: "picture", Label: "Picture", DBColumn: "picture", MaxLen: 2048, Pattern: pictureRegex,
		Message: "Invalid picture URL"},
}

// fieldIndex maps lowercase field names to their position in UserFields.
var fieldIndex = func() map[string]int {
	idx := make(map[string]int, len(UserFields))
	for i, f := range UserFields {
		idx[strings.ToLower(f.Name)] = i
	}
	return idx
}()

// LookupField returns the position of the named field, ignoring case.
func LookupField(name string) (int, bool) {
	i, ok := fieldIndex[strings.ToLower(name)]
	return i, ok
}

// UsStates maps US state and territory names to their abbreviations.
var UsStates = map[string]string{
	"alabama":                  "AL",
	"alaska":                   "AK",
	"arizona":                  "AZ",
	"arkansas":                 "AR",
	"california":               "CA",
	"colorado":                 "CO",
	"connecticut":              "CT",
	"delaware":                 "DE",
	"district of columbia":     "DC",
	"florida":                  "FL",
	"georgia":                  "GA",
	"hawaii":                   "HI",
	"idaho":                    "ID",
	"illinois":                 "IL",
	"indiana":                  "IN",
	"iowa":                     "IA",
	"kansas":                   "KS",
	"kentucky":                 "KY",
	"louisiana":                "LA",
	"maine":                    "ME",
	"maryland":                 "MD",
	"massachusetts":            "MA",
	"michigan":                 "MI",
	"minnesota":                "MN",
	"mississippi":              "MS",
	"missouri":                 "MO",
	"montana":                  "MT",
	"nebraska":                 "NE",
	"nevada":                   "NV",
	"new hampshire":            "NH",
	"new jersey":               "NJ",
	"new mexico":               "NM",
	"new york":                 "NY",
	"north carolina":           "NC",
	"north dakota":             "ND",
	"ohio":                     "OH",
	"oklahoma":                 "OK",
	"oregon":                   "OR",
	"pennsylvania":             "PA",
	"rhode island":             "RI",
	"south carolina":           "SC",
	"south dakota":             "SD",
	"tennessee":                "TN",
	"texas":                    "TX",
	"utah":                     "UT",
	"vermont":                  "VT",
	"virginia":                 "VA",
	"washington":               "WA",
	"west virginia":            "WV",
	"wisconsin":                "WI",
	"wyoming":                  "WY",
	"american samoa":           "AS",
	"guam":                     "GU",
	"northern mariana islands": "MP",
	"puerto rico":              "PR",
	"us virgin islands":        "VI",
}

// NormalizeUsState converts US state names to their 2-letter abbreviations
// and uppercases 2-letter codes. Anything else is returned as-is so the
// pattern check can report it.
func NormalizeUsState(s string) string {
	s = strings.TrimSpace(s)

	if code, ok := UsStates[strings.ToLower(s)]; ok {
		return code
	}

	if len(s) == 2 {
		return strings.ToUpper(s)
	}

	return s
}
