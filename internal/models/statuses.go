package models

type UserRole string
type ApplicationStatus string
type PaymentStatus string
type ScanMethod string

const (
	UserRolePassenger UserRole = "passenger"
	UserRoleConductor UserRole = "conductor"
	UserRoleAdmin     UserRole = "admin"

	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"

	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"

	ScanMethodQR     ScanMethod = "QR"
	ScanMethodManual ScanMethod = "MANUAL"
)

// ValidUserRole проверяет, что роль известна системе
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRolePassenger, UserRoleConductor, UserRoleAdmin:
		return true
	}
	return false
}

// ValidDecisionStatus проверяет, что статус допустим как решение по заявке
func ValidDecisionStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// ValidScanMethod проверяет способ сканирования
func ValidScanMethod(m ScanMethod) bool {
	switch m {
	case ScanMethodQR, ScanMethodManual:
		return true
	}
	return false
}
