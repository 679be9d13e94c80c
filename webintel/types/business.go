package types

import (
	"fmt"
	"strings"
)

// NotFound is written in place of any attribute the model could not determine.
const NotFound = "Not found"

// Answer sources.
const (
	SourceIndustry    = "industry_data"
	SourceCompanySize = "company_size_data"
	SourceLocation    = "location_data"
	SourceWebSearch   = "web_search"
	SourceLLM         = "llm"
)

type Industry struct {
	Industry        string   `json:"industry" jsonschema:"description=Primary industry of the company. Use 'Not found' if it cannot be determined"`
	ConfidenceScore float64  `json:"confidence_score" jsonschema:"minimum=0,maximum=1,description=Confidence in the industry classification between 0 and 1"`
	SubIndustries   []string `json:"sub_industries" jsonschema:"description=More specific sub-industries ordered by relevance"`
}

type CompanySize struct {
	SizeCategory    string  `json:"size_category" jsonschema:"description=One of startup/small/medium/large/enterprise or 'Not found'"`
	EmployeeRange   *string `json:"employee_range" jsonschema:"description=Estimated employee range such as 11-50. Null when unknown"`
	ConfidenceScore float64 `json:"confidence_score" jsonschema:"minimum=0,maximum=1,description=Confidence in the size estimate between 0 and 1"`
}

type Location struct {
	Headquarters         *string  `json:"headquarters" jsonschema:"description=City and country of the headquarters. Null when unknown"`
	Offices              []string `json:"offices" jsonschema:"description=Other office locations. Null when unknown"`
	CountriesOfOperation []string `json:"countries_of_operation" jsonschema:"description=Countries the company operates in. Null when unknown"`
	ConfidenceScore      float64  `json:"confidence_score" jsonschema:"minimum=0,maximum=1,description=Confidence in the location data between 0 and 1"`
}

// BusinessDetails is the structured record the analyzer extracts from a homepage.
type BusinessDetails struct {
	CompanyName      string      `json:"company_name" jsonschema:"description=Official company name"`
	WebsiteURL       string      `json:"website_url" jsonschema:"description=The analyzed website URL"`
	Industry         Industry    `json:"industry"`
	CompanySize      CompanySize `json:"company_size"`
	Location         Location    `json:"location"`
	Description      string      `json:"description" jsonschema:"description=Two or three sentence summary of what the company does"`
	ProductsServices []string    `json:"products_services" jsonschema:"description=Main products or services offered"`
	Technologies     []string    `json:"technologies" jsonschema:"description=Technologies the company builds or uses. Null when unknown"`
	FoundedYear      *int        `json:"founded_year" jsonschema:"description=Year the company was founded. Null when unknown"`
}

// QuestionAnswer is a cached answer to a free-text question about a company.
type QuestionAnswer struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
}

// DefaultBusinessDetails is the degraded record returned when the model
// response cannot be used.
func DefaultBusinessDetails(url string) *BusinessDetails {
	return &BusinessDetails{
		CompanyName: NotFound,
		WebsiteURL:  url,
		Industry: Industry{
			Industry:      NotFound,
			SubIndustries: []string{},
		},
		CompanySize: CompanySize{
			SizeCategory: NotFound,
		},
		Location:         Location{},
		Description:      NotFound,
		ProductsServices: []string{},
	}
}

// IsDegraded reports whether b carries no information beyond the sentinels.
func (b *BusinessDetails) IsDegraded() bool {
	return b.CompanyName == NotFound &&
		b.Industry.Industry == NotFound &&
		b.Industry.ConfidenceScore == 0 &&
		b.CompanySize.ConfidenceScore == 0 &&
		b.Location.ConfidenceScore == 0
}

// Normalize fills sentinels for blank display fields and non-nil slices for
// required lists.
func (b *BusinessDetails) Normalize(url string) {
	if strings.TrimSpace(b.WebsiteURL) == "" {
		b.WebsiteURL = url
	}
	if strings.TrimSpace(b.CompanyName) == "" {
		b.CompanyName = NotFound
	}
	if strings.TrimSpace(b.Industry.Industry) == "" {
		b.Industry.Industry = NotFound
	}
	if strings.TrimSpace(b.CompanySize.SizeCategory) == "" {
		b.CompanySize.SizeCategory = NotFound
	}
	if strings.TrimSpace(b.Description) == "" {
		b.Description = NotFound
	}
	if b.Industry.SubIndustries == nil {
		b.Industry.SubIndustries = []string{}
	}
	if b.ProductsServices == nil {
		b.ProductsServices = []string{}
	}
}

func (b *BusinessDetails) Validate() error {
	if strings.TrimSpace(b.CompanyName) == "" {
		return fmt.Errorf("company_name is empty")
	}
	scores := map[string]float64{
		"industry":     b.Industry.ConfidenceScore,
		"company_size": b.CompanySize.ConfidenceScore,
		"location":     b.Location.ConfidenceScore,
	}
	for name, s := range scores {
		if s < 0 || s > 1 {
			return fmt.Errorf("%s confidence_score %v out of range [0,1]", name, s)
		}
	}
	return nil
}

// HeadquartersOrNotFound returns the headquarters or the sentinel.
func (l Location) HeadquartersOrNotFound() string {
	if l.Headquarters == nil || strings.TrimSpace(*l.Headquarters) == "" {
		return NotFound
	}
	return *l.Headquarters
}

// Summary condenses the record into a few lines of prompt context.
func (b *BusinessDetails) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s\n", b.CompanyName)
	fmt.Fprintf(&sb, "Website: %s\n", b.WebsiteURL)
	fmt.Fprintf(&sb, "Industry: %s\n", b.Industry.Industry)
	fmt.Fprintf(&sb, "Size: %s\n", b.CompanySize.SizeCategory)
	fmt.Fprintf(&sb, "Headquarters: %s\n", b.Location.HeadquartersOrNotFound())
	fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	if len(b.ProductsServices) > 0 {
		fmt.Fprintf(&sb, "Products/Services: %s\n", strings.Join(b.ProductsServices, ", "))
	}
	return sb.String()
}

func ClampConfidence(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
