package catalog

// builtinEntries is the standard procurement classification taxonomy:
// 50 commodity groups across seven areas.
var builtinEntries = []Entry{
	// General Services (001-010)
	{"001", "Accommodation Rentals", "General Services - Accommodation and rental services"},
	{"002", "Membership Fees", "General Services - Professional and organizational membership fees"},
	{"003", "Workplace Safety", "General Services - Workplace safety equipment and services"},
	{"004", "Consulting", "General Services - Business and professional consulting services"},
	{"005", "Financial Services", "General Services - Banking, accounting, and financial services"},
	{"006", "Fleet Management", "General Services - Vehicle fleet management and related services"},
	{"007", "Recruitment Services", "General Services - Staffing, hiring, and recruitment services"},
	{"008", "Professional Development", "General Services - Training, education, and professional development"},
	{"009", "Miscellaneous Services", "General Services - Other general services not categorized elsewhere"},
	{"010", "Insurance", "General Services - Business and liability insurance services"},

	// Facility Management (011-019)
	{"011", "Electrical Engineering", "Facility Management - Electrical installation and maintenance"},
	{"012", "Facility Management Services", "Facility Management - General facility management and operations"},
	{"013", "Security", "Facility Management - Security services and systems"},
	{"014", "Renovations", "Facility Management - Building renovations and improvements"},
	{"015", "Office Equipment", "Facility Management - Office furniture and equipment"},
	{"016", "Energy Management", "Facility Management - Energy efficiency and management services"},
	{"017", "Maintenance", "Facility Management - General building maintenance services"},
	{"018", "Cafeteria and Kitchenettes", "Facility Management - Food service areas and kitchen equipment"},
	{"019", "Cleaning", "Facility Management - Cleaning and janitorial services"},

	// Publishing Production (020-028)
	{"020", "Audio and Visual Production", "Publishing Production - Audio and video production services"},
	{"021", "Books/Videos/CDs", "Publishing Production - Physical media production and publishing"},
	{"022", "Printing Costs", "Publishing Production - Printing and reproduction services"},
	{"023", "Software Development for Publishing", "Publishing Production - Custom software for publishing workflows"},
	{"024", "Material Costs", "Publishing Production - Raw materials for publishing production"},
	{"025", "Shipping for Production", "Publishing Production - Shipping and logistics for production materials"},
	{"026", "Digital Product Development", "Publishing Production - Digital content and product development"},
	{"027", "Pre-production", "Publishing Production - Pre-production planning and services"},
	{"028", "Post-production Costs", "Publishing Production - Post-production editing and finishing"},

	// Information Technology (029-031)
	{"029", "Hardware", "Information Technology - Computer hardware and equipment"},
	{"030", "IT Services", "Information Technology - IT support and consulting services"},
	{"031", "Software", "Information Technology - Software licenses and subscriptions"},

	// Logistics (032-035)
	{"032", "Courier, Express, and Postal Services", "Logistics - Courier, express delivery, and postal services"},
	{"033", "Warehousing and Material Handling", "Logistics - Warehouse storage and material handling"},
	{"034", "Transportation Logistics", "Logistics - Transportation and freight services"},
	{"035", "Delivery Services", "Logistics - Local and regional delivery services"},

	// Marketing & Advertising (036-043)
	{"036", "Advertising", "Marketing & Advertising - General advertising services"},
	{"037", "Outdoor Advertising", "Marketing & Advertising - Billboards and outdoor media"},
	{"038", "Marketing Agencies", "Marketing & Advertising - Marketing agency services"},
	{"039", "Direct Mail", "Marketing & Advertising - Direct mail campaigns and services"},
	{"040", "Customer Communication", "Marketing & Advertising - Customer communication and CRM"},
	{"041", "Online Marketing", "Marketing & Advertising - Digital and online marketing services"},
	{"042", "Events", "Marketing & Advertising - Event planning and management"},
	{"043", "Promotional Materials", "Marketing & Advertising - Branded merchandise and promotional items"},

	// Production (044-050)
	{"044", "Warehouse and Operational Equipment", "Production - Equipment for warehouse and operations"},
	{"045", "Production Machinery", "Production - Manufacturing and production machinery"},
	{"046", "Spare Parts", "Production - Replacement parts for production equipment"},
	{"047", "Internal Transportation", "Production - Internal logistics and material movement"},
	{"048", "Production Materials", "Production - Raw materials for production"},
	{"049", "Consumables", "Production - Consumable supplies for production"},
	{"050", "Maintenance and Repairs", "Production - Equipment maintenance and repair services"},
}
