package constants

//============== UPLOAD CONTEXTS ==============

// UploadContext selects the upload rules in config.UploadContexts.
type UploadContext string

const (
	UploadContextCertificate UploadContext = "certificate"
	UploadContextPhoto       UploadContext = "photo"
	UploadContextManual      UploadContext = "manual"
	UploadContextImport      UploadContext = "equipment_import"
)

func (uc UploadContext) String() string {
	return string(uc)
}

//============== EQUIPMENT ==============

type EquipmentCategory string

const (
	CategoryCentralLab           EquipmentCategory = "central_lab"
	CategoryField                EquipmentCategory = "field"
	CategoryCentralLabConsumable EquipmentCategory = "central_lab_consumable"
	CategorySafetyConsumable     EquipmentCategory = "safety_consumable"
	CategoryFieldLab             EquipmentCategory = "field_lab"
)

// Categories lists the categories in display order.
var Categories = []EquipmentCategory{
	CategoryCentralLab,
	CategoryField,
	CategoryCentralLabConsumable,
	CategorySafetyConsumable,
	CategoryFieldLab,
}

var categoryLabels = map[EquipmentCategory]string{
	CategoryCentralLab:           "Central Laboratory",
	CategoryField:                "Field Inventory",
	CategoryCentralLabConsumable: "Central Laboratory Consumable",
	CategorySafetyConsumable:     "Safety Equipment Consumable",
	CategoryFieldLab:             "Field Laboratory",
}

func (c EquipmentCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c EquipmentCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

type EquipmentStatus string

const (
	StatusActive   EquipmentStatus = "active"
	StatusInactive EquipmentStatus = "inactive"
)

func (s EquipmentStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

//============== DOCUMENTS ==============

type DocumentType string

const (
	DocumentCertificate DocumentType = "certificate"
	DocumentPhoto       DocumentType = "photo"
	DocumentManual      DocumentType = "manual"
)

func (d DocumentType) Valid() bool {
	return d == DocumentCertificate || d == DocumentPhoto || d == DocumentManual
}

// UploadContext maps a document type onto its upload rules.
func (d DocumentType) UploadContext() UploadContext {
	switch d {
	case DocumentPhoto:
		return UploadContextPhoto
	case DocumentManual:
		return UploadContextManual
	default:
		return UploadContextCertificate
	}
}

// EquipmentDeletedLabel is shown instead of the equipment name for documents
// whose equipment no longer exists.
const EquipmentDeletedLabel = "equipment deleted"

//============== ALERTS ==============

type AlertKind string

const (
	AlertCalibrationDue   AlertKind = "calibration-due"
	AlertDocumentExpired  AlertKind = "document-expired"
	AlertCalibrationStale AlertKind = "calibration-stale"
)

func (k AlertKind) Valid() bool {
	return k == AlertCalibrationDue || k == AlertDocumentExpired || k == AlertCalibrationStale
}

//============== USERS ==============

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

//============== CACHE KEYS ==============

const (
	// login_attempts:<email> -> failed attempt counter
	CacheKeyLoginAttempts = "login_attempts:%s"
	// lockout:<email> -> "locked" while the lockout lasts
	CacheKeyLockout = "lockout:%s"
)

//============== FORMATS ==============

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
