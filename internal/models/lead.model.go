package models

const (
	SourceDirect = "direct"
	SourceSample = "sample"
)

type Lead struct {
	ID            int    `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	Name          string `gorm:"type:varchar(255);not null"        json:"name"`
	Email         string `gorm:"type:varchar(255);not null"        json:"email"`
	Phone         string `gorm:"type:varchar(50);not null"         json:"phone"`
	InsuranceType string `gorm:"type:varchar(100);not null"        json:"insurance_type"`
	Message       string `gorm:"type:text"                         json:"message"`
	Source        string `gorm:"type:varchar(255)"                 json:"source"`
	// ISO-8601 (RFC 3339) UTC, assigned once at insert and never mutated.
	CreatedAt string `gorm:"type:varchar(64);not null" json:"created_at"`
}

func (Lead) TableName() string {
	return "leads"
}

// CSVHeader lists the lead fields in schema order, matching the export format.
func CSVHeader() []string {
	return []string{"id", "name", "email", "phone", "insurance_type", "message", "source", "created_at"}
}

type LeadInput struct {
	Name          string `json:"name"           form:"name"           validate:"required"`
	Email         string `json:"email"          form:"email"          validate:"required"`
	Phone         string `json:"phone"          form:"phone"          validate:"required"`
	InsuranceType string `json:"insurance_type" form:"insurance_type" validate:"required"`
	Message       string `json:"message"        form:"message"`
	Source        string `json:"-"              form:"-"`
}
