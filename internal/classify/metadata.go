package classify

import "fmt"

// Metadata is the read-time presentation data attached to a category.
type Metadata struct {
	Skills       []string
	SalaryRange  string
	MedianSalary int
	Description  string
}

type categoryInfo struct {
	skills       []string
	salaryRange  string
	medianSalary int
	// description is a format string with a single %s for the sector name.
	description string
}

var (
	defaultSkills      = []string{"Communication", "Teamwork", "Problem Solving", "Organization", "Attention to Detail"}
	defaultSalaryRange = "$40,000 - $80,000"
	defaultMedian      = 60000
)

const defaultDescription = "%s professionals work in the %s sector. They provide specialized services and require specific skills for their roles. This field offers various opportunities for career development and growth."

var categories = map[string]categoryInfo{
	"Senior management": {
		skills:       []string{"Strategic Planning", "Leadership", "Decision Making", "Business Development", "Financial Management"},
		salaryRange:  "$100,000 - $200,000+",
		medianSalary: 150000,
		description:  "Senior management professionals lead organizations and departments, making strategic decisions that guide business operations. They develop policies, manage budgets, and oversee staff in the %s sector.",
	},
	"Specialized middle management": {
		skills:       []string{"Project Management", "Team Leadership", "Budget Management", "Strategic Planning", "Performance Management"},
		salaryRange:  "$85,000 - $150,000",
		medianSalary: 117500,
		description:  "Specialized middle management professionals oversee specific departments or functions within organizations in the %s sector. They implement strategic initiatives, manage teams, and report to senior executives.",
	},
	"Middle management": {
		skills:       []string{"Team Leadership", "Operations Management", "Budget Control", "Problem Solving", "Staff Development"},
		salaryRange:  "$70,000 - $120,000",
		medianSalary: 95000,
		description:  "Middle management professionals supervise operational activities and staff in the %s sector. They implement policies, monitor performance, and ensure organizational objectives are met.",
	},
	"Professional occupations in business and finance": {
		skills:       []string{"Financial Analysis", "Business Strategy", "Risk Management", "Regulatory Compliance", "Data Analysis"},
		salaryRange:  "$65,000 - $130,000",
		medianSalary: 97500,
		description:  "Business and finance professionals provide specialized services such as accounting, financial analysis, human resources, and business consulting in the %s sector. They analyze data, develop reports, and provide strategic recommendations.",
	},
	"Professional occupations in natural and applied sciences": {
		skills:       []string{"Research", "Technical Analysis", "Problem Solving", "Project Management", "Technical Documentation"},
		salaryRange:  "$70,000 - $140,000",
		medianSalary: 105000,
		description:  "Natural and applied sciences professionals conduct research, develop new technologies, and solve complex problems in the %s sector. They apply scientific and technical knowledge to advance innovation.",
	},
	"Professional occupations in health": {
		skills:       []string{"Patient Care", "Clinical Assessment", "Treatment Planning", "Health Promotion", "Medical Record Management"},
		salaryRange:  "$75,000 - $200,000",
		medianSalary: 137500,
		description:  "Health professionals diagnose, treat, and prevent illness and injury in the %s sector. They provide direct patient care, conduct health assessments, and develop treatment plans.",
	},
	"Technical and skilled occupations in health": {
		skills:       []string{"Patient Support", "Medical Testing", "Equipment Operation", "Clinical Procedures", "Record Keeping"},
		salaryRange:  "$55,000 - $90,000",
		medianSalary: 72500,
		description:  "Health technicians and skilled practitioners support healthcare delivery in the %s sector. They operate medical equipment, conduct tests, and assist health professionals in patient care.",
	},
	"Professional occupations in education, law, social and government services": {
		skills:       []string{"Curriculum Development", "Legal Research", "Policy Analysis", "Case Management", "Program Development"},
		salaryRange:  "$65,000 - $150,000",
		medianSalary: 107500,
		description:  "Education, law, social, and government professionals provide specialized services in the %s sector. They teach, provide legal counsel, develop social programs, and implement government policies.",
	},
	"Paraprofessional occupations in legal, social and education services": {
		skills:       []string{"Research Support", "Client Assessment", "Documentation", "Program Implementation", "Administrative Support"},
		salaryRange:  "$45,000 - $80,000",
		medianSalary: 62500,
		description:  "Paraprofessionals in legal, social, and education services support professional practitioners in the %s sector. They assist with research, documentation, client services, and program implementation.",
	},
	"Professional occupations in art and culture": {
		skills:       []string{"Creative Direction", "Content Development", "Artistic Design", "Production Management", "Performance"},
		salaryRange:  "$50,000 - $100,000",
		medianSalary: 75000,
		description:  "Art and culture professionals create, produce, and promote artistic and cultural works in the %s sector. They express creative vision, develop content, and manage cultural productions.",
	},
	"Technical occupations in art, culture and sport": {
		skills:       []string{"Technical Support", "Equipment Operation", "Design Implementation", "Production Assistance", "Performance Support"},
		salaryRange:  "$40,000 - $85,000",
		medianSalary: 62500,
		description:  "Art, culture, and sport technicians provide technical support for creative and athletic activities in the %s sector. They operate equipment, implement designs, and support performances and competitions.",
	},
	"Retail sales supervisors and specialized sales occupations": {
		skills:       []string{"Customer Service", "Sales Techniques", "Inventory Management", "Staff Supervision", "Merchandising"},
		salaryRange:  "$40,000 - $80,000",
		medianSalary: 60000,
		description:  "Retail and sales professionals manage retail operations and specialized sales functions in the %s sector. They supervise staff, develop merchandising strategies, and optimize sales performance.",
	},
	"Service supervisors and specialized service occupations": {
		skills:       []string{"Customer Service", "Team Supervision", "Quality Assurance", "Service Delivery", "Process Improvement"},
		salaryRange:  "$40,000 - $75,000",
		medianSalary: 57500,
		description:  "Service supervisors and specialists manage service delivery and perform specialized service functions in the %s sector. They ensure customer satisfaction, supervise staff, and implement service protocols.",
	},
	"Service representatives and other customer service occupations": {
		skills:       []string{"Customer Support", "Problem Resolution", "Communication", "Service Delivery", "Information Provision"},
		salaryRange:  "$35,000 - $60,000",
		medianSalary: 47500,
		description:  "Customer service representatives provide direct assistance to customers in the %s sector. They respond to inquiries, resolve issues, and ensure positive customer experiences.",
	},
	"Industrial, electrical and construction trades": {
		skills:       []string{"Technical Skills", "Equipment Operation", "Blueprint Reading", "Installation", "Troubleshooting"},
		salaryRange:  "$50,000 - $100,000",
		medianSalary: 75000,
		description:  "Industrial, electrical, and construction tradespeople build, install, and maintain structures and systems in the %s sector. They apply technical skills to construction, electrical, and industrial projects.",
	},
	"Maintenance and equipment operation trades": {
		skills:       []string{"Equipment Maintenance", "Mechanical Repair", "Troubleshooting", "Safety Procedures", "Preventative Maintenance"},
		salaryRange:  "$45,000 - $90,000",
		medianSalary: 67500,
		description:  "Maintenance and equipment operation tradespeople maintain and operate machinery and equipment in the %s sector. They conduct inspections, perform repairs, and ensure safe and efficient operations.",
	},
	"Other installers, repairers and servicers": {
		skills:       []string{"Installation", "Repair", "Testing", "Maintenance", "Customer Service"},
		salaryRange:  "$40,000 - $75,000",
		medianSalary: 57500,
		description:  "Installers, repairers, and servicers set up, maintain, and fix various equipment and systems in the %s sector. They troubleshoot issues, replace components, and ensure proper functioning.",
	},
	"Supervisors and technical occupations in natural resources and agriculture": {
		skills:       []string{"Resource Management", "Team Supervision", "Technical Operations", "Safety Oversight", "Quality Control"},
		salaryRange:  "$50,000 - $95,000",
		medianSalary: 72500,
		description:  "Natural resources and agriculture supervisors and technicians manage and support extraction and production activities in the %s sector. They oversee operations, implement technical procedures, and ensure resource management.",
	},
	"Workers in natural resources and agriculture": {
		skills:       []string{"Equipment Operation", "Resource Extraction", "Agricultural Production", "Physical Labor", "Safety Procedures"},
		salaryRange:  "$35,000 - $75,000",
		medianSalary: 55000,
		description:  "Natural resources and agriculture workers perform extraction, harvesting, and production tasks in the %s sector. They operate equipment, follow production protocols, and support resource operations.",
	},
	"Harvesting and landscaping supervisors and laborers": {
		skills:       []string{"Landscape Maintenance", "Equipment Operation", "Planting", "Irrigation", "Team Coordination"},
		salaryRange:  "$35,000 - $65,000",
		medianSalary: 50000,
		description:  "Harvesting and landscaping personnel maintain grounds, plant and harvest crops, and support outdoor environments in the %s sector. They implement landscaping designs, manage plants, and maintain outdoor spaces.",
	},
	"Processing, manufacturing and utilities supervisors and central control operators": {
		skills:       []string{"Process Oversight", "Quality Control", "Team Supervision", "Equipment Monitoring", "Safety Management"},
		salaryRange:  "$55,000 - $95,000",
		medianSalary: 75000,
		description:  "Processing, manufacturing, and utilities supervisors and operators oversee production processes in the %s sector. They monitor equipment, ensure quality standards, and maintain safe operations.",
	},
	"Processing and manufacturing machine operators and assemblers": {
		skills:       []string{"Machine Operation", "Quality Inspection", "Assembly", "Production Monitoring", "Technical Procedures"},
		salaryRange:  "$40,000 - $75,000",
		medianSalary: 57500,
		description:  "Processing and manufacturing operators run machinery and assemble products in the %s sector. They follow production procedures, monitor quality, and maintain efficient operations.",
	},
	"Laborers in processing, manufacturing and utilities": {
		skills:       []string{"Material Handling", "Equipment Operation", "Product Assembly", "Quality Checking", "Physical Labor"},
		salaryRange:  "$35,000 - $65,000",
		medianSalary: 50000,
		description:  "Processing, manufacturing, and utilities laborers perform manual tasks in production and utility operations in the %s sector. They handle materials, assist with assembly, and support production activities.",
	},
}

// Skills returns five typical skills for category. The slice is a fresh copy.
func Skills(category string) []string {
	src := defaultSkills
	if info, ok := categories[category]; ok {
		src = info.skills
	}
	return append([]string(nil), src...)
}

// SalaryRange returns an approximate salary range for display.
func SalaryRange(category string) string {
	if info, ok := categories[category]; ok {
		return info.salaryRange
	}
	return defaultSalaryRange
}

// MedianSalary returns the midpoint of the category's salary range.
func MedianSalary(category string) int {
	if info, ok := categories[category]; ok {
		return info.medianSalary
	}
	return defaultMedian
}

// Description returns a one-paragraph description of category within sector.
// Empty names render as Other.
func Description(category, sector string) string {
	if sector == "" {
		sector = Other
	}
	if info, ok := categories[category]; ok {
		return fmt.Sprintf(info.description, sector)
	}
	if category == "" {
		category = Other
	}
	return fmt.Sprintf(defaultDescription, category, sector)
}

// For bundles all metadata for one (category, sector) pair.
func For(category, sector string) Metadata {
	return Metadata{
		Skills:       Skills(category),
		SalaryRange:  SalaryRange(category),
		MedianSalary: MedianSalary(category),
		Description:  Description(category, sector),
	}
}
