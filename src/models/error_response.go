package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Status  int    `json:"status"`         // HTTP Status Code
	Code    string `json:"code,omitempty"` // machine-readable condition, e.g. QUOTA_EXCEEDED
	Message string `json:"message"`        // รายละเอียดของ Error
}
