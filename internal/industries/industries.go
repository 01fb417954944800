package industries

// Industry pairs a display label with the slug used by the form vendor.
type Industry struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Industries is the fixed lookup table shared with the assessment form.
// "Other" is the final catch-all.
var Industries = []Industry{
	{Label: "Retail & E-commerce", Slug: "retail_ecommerce"},
	{Label: "Technology & Software", Slug: "technology_software"},
	{Label: "Marketing & Advertising (Agencies)", Slug: "marketing_advertising"},
	{Label: "Manufacturing (incl. CPG)", Slug: "manufacturing_cpg"},
	{Label: "Transportation & Logistics / Supply Chain", Slug: "transport_logistics"},
	{Label: "Finance & Banking (incl. Fintech)", Slug: "finance_banking"},
	{Label: "Healthcare & Life Sciences", Slug: "healthcare_lifesciences"},
	{Label: "Education & Training", Slug: "education_training"},
	{Label: "Hospitality, Travel & Leisure", Slug: "hospitality_travel"},
	{Label: "Construction & Real Estate", Slug: "construction_realestate"},
	{Label: "Energy, Utilities & Natural Resources", Slug: "energy_utilities"},
	{Label: "Media & Entertainment", Slug: "media_entertainment"},
	{Label: "Telecommunications", Slug: "telecommunications"},
	{Label: "Government & Nonprofit", Slug: "government_nonprofit"},
	{Label: "Professional Services (Consulting, Legal, Accounting)", Slug: "professional_services"},
	{Label: "Other", Slug: "other"},
}

// Parse resolves a raw industry value that may be either a slug or a label.
// Unknown values pass through verbatim as both label and slug; matching is
// case-sensitive against the canonical table values.
func Parse(value string) Industry {
	for _, ind := range Industries {
		if ind.Slug == value {
			return ind
		}
	}
	for _, ind := range Industries {
		if ind.Label == value {
			return ind
		}
	}
	return Industry{Label: value, Slug: value}
}

// Label returns the display label for a slug, or the slug itself if unknown.
func Label(slug string) string {
	for _, ind := range Industries {
		if ind.Slug == slug {
			return ind.Label
		}
	}
	return slug
}

// Slug returns the slug for a display label, or the label itself if unknown.
func Slug(label string) string {
	for _, ind := range Industries {
		if ind.Label == label {
			return ind.Slug
		}
	}
	return label
}
