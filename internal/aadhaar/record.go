// Package aadhaar parses Aadhaar card details out of raw document text.
//
// The input is the noisy, multi-script text blob produced by the acquisition
// layer (native PDF text or OCR output). Every field is extracted by an
// independent best-effort pattern, so a record may be partially filled; an
// unmatched field is simply the empty string.
package aadhaar

// Record holds the structured fields extracted from an Aadhaar card.
// All fields are optional; absence of one never blocks extraction of others.
type Record struct {
	AadhaarNumber string `json:"aadhaar_number"`
	NameTamil     string `json:"name_tamil"`
	Name          string `json:"name"`
	GuardianName  string `json:"guardian_name"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	Address       string `json:"address"`
	District      string `json:"district"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Phone         string `json:"phone"`
	VID           string `json:"vid"`
}
