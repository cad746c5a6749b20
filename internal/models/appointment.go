package models

// Appointment is the booking document. Customer and service fields are
// snapshots taken at booking time and are never re-synced afterwards.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;index" json:"user_id"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	BarberName  string  `gorm:"size:100" json:"barber_name"`
	ServiceName string  `gorm:"size:100" json:"service_name"`
	Price       float64 `json:"price"`

	// Date is dd/mm/yyyy, Time is HH:mm on the hour.
	Date string `gorm:"size:10" json:"date"`
	Time string `gorm:"size:5" json:"time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// SlotKey is derived from (barber_name, date, time); the unique index
	// is what makes the booking insert atomic.
	SlotKey string `gorm:"size:36;uniqueIndex" json:"-"`

	// CreatedAt is unix milliseconds, display sort order is descending.
	CreatedAt int64 `gorm:"index" json:"created_at"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmada"
)
