// Package form declares the visa application form schema: every field the
// form can carry, its shape, and the section it belongs to. The schema is the
// single source of truth for the gateway's sparse-write validation and for
// the submission completeness check.
package form

// Section names group fields the way the UI renders them. Incomplete-submission
// errors are reported grouped by these names.
const (
	SectionApplicant   = "applicant"
	SectionPassport    = "passport"
	SectionAddress     = "address"
	SectionFamily      = "family"
	SectionTravel      = "travel"
	SectionHistory     = "history"
	SectionReferences  = "references"
	SectionSecurity    = "security"
	SectionDeclaration = "declaration"
)

// Kind is the declared shape of a field value.
type Kind int

const (
	KindString Kind = iota
	KindEmail
	KindDate // ISO YYYY-MM-DD
	KindBool
	KindEnum
	KindUUID
	KindStringList
)

// Field describes one form field's shape and submission requirement.
type Field struct {
	Section  string
	Kind     Kind
	MaxLen   int      // strings and list items; 0 means the default cap
	Enum     []string // closed value set for KindEnum
	MaxItems int      // KindStringList only; 0 means the default cap
	Required bool     // required for submission (not for autosave)
}

// Default caps applied when a Field does not set its own.
const (
	defaultMaxLen   = 200
	defaultMaxItems = 50
)

// Gender and visa type are closed enumerations.
var (
	GenderValues   = []string{"male", "female", "other"}
	VisaTypeValues = []string{"tourist", "business", "transit", "medical"}
)

// FieldEmail is the one field required at draft creation time.
const FieldEmail = "email"

// FieldDeclaration is the acceptance flag that must be true at submission.
const FieldDeclaration = "declaration_accepted"

// FieldSurname is the anchor field: the autosave orchestrator refuses to
// create a draft before it is non-empty.
const FieldSurname = "surname"

// Fields is the full schema, keyed by wire name.
var Fields = map[string]Field{
	// applicant
	"given_names":            {Section: SectionApplicant, Kind: KindString, Required: true},
	"surname":                {Section: SectionApplicant, Kind: KindString, Required: true},
	"email":                  {Section: SectionApplicant, Kind: KindEmail, MaxLen: 254, Required: true},
	"phone":                  {Section: SectionApplicant, Kind: KindString, MaxLen: 32, Required: true},
	"gender":                 {Section: SectionApplicant, Kind: KindEnum, Enum: GenderValues, Required: true},
	"marital_status":         {Section: SectionApplicant, Kind: KindEnum, Enum: []string{"single", "married", "divorced", "widowed"}, Required: true},
	"date_of_birth":          {Section: SectionApplicant, Kind: KindDate, Required: true},
	"country_of_birth":       {Section: SectionApplicant, Kind: KindString, MaxLen: 100, Required: true},
	"place_of_birth":         {Section: SectionApplicant, Kind: KindString, MaxLen: 100},
	"nationality":            {Section: SectionApplicant, Kind: KindString, MaxLen: 100, Required: true},
	"other_nationality_held": {Section: SectionApplicant, Kind: KindBool},
	"other_nationality":      {Section: SectionApplicant, Kind: KindString, MaxLen: 100},
	"national_id_number":     {Section: SectionApplicant, Kind: KindString, MaxLen: 50},
	"occupation":             {Section: SectionApplicant, Kind: KindString, MaxLen: 100, Required: true},
	"employer_name":          {Section: SectionApplicant, Kind: KindString},
	"employer_address":       {Section: SectionApplicant, Kind: KindString, MaxLen: 300},
	"employer_phone":         {Section: SectionApplicant, Kind: KindString, MaxLen: 32},

	// passport
	"passport_number":          {Section: SectionPassport, Kind: KindString, MaxLen: 50, Required: true},
	"passport_type":            {Section: SectionPassport, Kind: KindEnum, Enum: []string{"ordinary", "diplomatic", "official", "other"}},
	"issue_date":               {Section: SectionPassport, Kind: KindDate, Required: true},
	"expiry_date":              {Section: SectionPassport, Kind: KindDate, Required: true},
	"issuing_authority":        {Section: SectionPassport, Kind: KindString, MaxLen: 100, Required: true},
	"issue_place":              {Section: SectionPassport, Kind: KindString, MaxLen: 100},
	"previous_passport_held":   {Section: SectionPassport, Kind: KindBool},
	"previous_passport_number": {Section: SectionPassport, Kind: KindString, MaxLen: 50},
	"passport_lost_before":     {Section: SectionPassport, Kind: KindBool},
	"passport_lost_details":    {Section: SectionPassport, Kind: KindString, MaxLen: 500},

	// address
	"address_line1":        {Section: SectionAddress, Kind: KindString, MaxLen: 300, Required: true},
	"address_line2":        {Section: SectionAddress, Kind: KindString, MaxLen: 300},
	"city":                 {Section: SectionAddress, Kind: KindString, MaxLen: 100, Required: true},
	"state_province":       {Section: SectionAddress, Kind: KindString, MaxLen: 100},
	"postal_code":          {Section: SectionAddress, Kind: KindString, MaxLen: 20, Required: true},
	"country_of_residence": {Section: SectionAddress, Kind: KindString, MaxLen: 100, Required: true},
	"years_at_address":     {Section: SectionAddress, Kind: KindString, MaxLen: 10},
	"residence_status":     {Section: SectionAddress, Kind: KindEnum, Enum: []string{"citizen", "permanent_resident", "temporary_resident", "visitor"}},

	// family
	"father_given_names":      {Section: SectionFamily, Kind: KindString},
	"father_surname":          {Section: SectionFamily, Kind: KindString},
	"father_nationality":      {Section: SectionFamily, Kind: KindString, MaxLen: 100},
	"father_country_of_birth": {Section: SectionFamily, Kind: KindString, MaxLen: 100},
	"mother_given_names":      {Section: SectionFamily, Kind: KindString},
	"mother_surname":          {Section: SectionFamily, Kind: KindString},
	"mother_nationality":      {Section: SectionFamily, Kind: KindString, MaxLen: 100},
	"mother_country_of_birth": {Section: SectionFamily, Kind: KindString, MaxLen: 100},
	"spouse_given_names":      {Section: SectionFamily, Kind: KindString},
	"spouse_surname":          {Section: SectionFamily, Kind: KindString},
	"spouse_nationality":      {Section: SectionFamily, Kind: KindString, MaxLen: 100},
	"spouse_date_of_birth":    {Section: SectionFamily, Kind: KindDate},
	"children_count":          {Section: SectionFamily, Kind: KindString, MaxLen: 3},

	// travel
	"visa_type":            {Section: SectionTravel, Kind: KindEnum, Enum: VisaTypeValues, Required: true},
	"purpose_of_visit":     {Section: SectionTravel, Kind: KindString, MaxLen: 500, Required: true},
	"arrival_date":         {Section: SectionTravel, Kind: KindDate, Required: true},
	"departure_date":       {Section: SectionTravel, Kind: KindDate},
	"arrival_point_id":     {Section: SectionTravel, Kind: KindUUID},
	"port_of_departure":    {Section: SectionTravel, Kind: KindString, MaxLen: 100},
	"accommodation_name":   {Section: SectionTravel, Kind: KindString},
	"accommodation_address": {Section: SectionTravel, Kind: KindString, MaxLen: 300},
	"accommodation_phone":  {Section: SectionTravel, Kind: KindString, MaxLen: 32},
	"countries_visited":    {Section: SectionTravel, Kind: KindStringList, MaxLen: 100},
	"final_destination":    {Section: SectionTravel, Kind: KindString, MaxLen: 100},
	"onward_travel_booked": {Section: SectionTravel, Kind: KindBool},

	// previous-visa history
	"previously_visited":      {Section: SectionHistory, Kind: KindBool},
	"previous_visit_date":     {Section: SectionHistory, Kind: KindDate},
	"previous_visa_number":    {Section: SectionHistory, Kind: KindString, MaxLen: 50},
	"previous_visa_issue_date": {Section: SectionHistory, Kind: KindDate},
	"visa_refused_before":     {Section: SectionHistory, Kind: KindBool},
	"visa_refusal_details":    {Section: SectionHistory, Kind: KindString, MaxLen: 500},
	"overstayed_before":       {Section: SectionHistory, Kind: KindBool},
	"overstay_details":        {Section: SectionHistory, Kind: KindString, MaxLen: 500},
	"deported_before":         {Section: SectionHistory, Kind: KindBool},
	"deportation_details":     {Section: SectionHistory, Kind: KindString, MaxLen: 500},

	// references
	"reference1_name":         {Section: SectionReferences, Kind: KindString},
	"reference1_phone":        {Section: SectionReferences, Kind: KindString, MaxLen: 32},
	"reference1_address":      {Section: SectionReferences, Kind: KindString, MaxLen: 300},
	"reference1_relationship": {Section: SectionReferences, Kind: KindString, MaxLen: 50},
	"reference2_name":         {Section: SectionReferences, Kind: KindString},
	"reference2_phone":        {Section: SectionReferences, Kind: KindString, MaxLen: 32},
	"reference2_address":      {Section: SectionReferences, Kind: KindString, MaxLen: 300},
	"reference2_relationship": {Section: SectionReferences, Kind: KindString, MaxLen: 50},

	// security screening
	"convicted_of_crime":         {Section: SectionSecurity, Kind: KindBool, Required: true},
	"crime_details":              {Section: SectionSecurity, Kind: KindString, MaxLen: 500},
	"involved_in_terrorism":      {Section: SectionSecurity, Kind: KindBool, Required: true},
	"involved_in_trafficking":    {Section: SectionSecurity, Kind: KindBool, Required: true},
	"carried_infectious_disease": {Section: SectionSecurity, Kind: KindBool},
	"security_details":           {Section: SectionSecurity, Kind: KindString, MaxLen: 500},

	// declaration
	"declaration_accepted": {Section: SectionDeclaration, Kind: KindBool, Required: true},
}

// maxLen returns the effective length cap for a field.
func (f Field) maxLen() int {
	if f.MaxLen > 0 {
		return f.MaxLen
	}
	return defaultMaxLen
}

// maxItems returns the effective item cap for a list field.
func (f Field) maxItems() int {
	if f.MaxItems > 0 {
		return f.MaxItems
	}
	return defaultMaxItems
}
