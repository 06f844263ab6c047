package aadhaar

import (
	"strings"
	"testing"
)

const sampleCardText = "1234 5678 9012\n" +
	"John Smith\n" +
	"S/O Robert Smith\n" +
	"DOB: 01-02-1990\n" +
	"Male\n" +
	"Address: 12 Main St\n" +
	"District: Chennai\n" +
	"State: Tamil Nadu\n" +
	"600001\n" +
	"9876543210"

func TestParse_SampleCard(t *testing.T) {
	rec := Parse(sampleCardText)

	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"aadhaar_number", rec.AadhaarNumber, "1234 5678 9012"},
		{"name", rec.Name, "John Smith"},
		{"guardian_name", rec.GuardianName, "Robert Smith"},
		{"dob", rec.DOB, "01/02/1990"},
		{"gender", rec.Gender, "Male"},
		{"address", rec.Address, "12 Main St"},
		{"district", rec.District, "Chennai"},
		{"state", rec.State, "Tamil Nadu"},
		{"pincode", rec.Pincode, "600001"},
		{"phone", rec.Phone, "9876543210"},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}

	if !IsValidNumber(rec.AadhaarNumber) {
		t.Errorf("expected %q to be a valid number", rec.AadhaarNumber)
	}
}

func TestParse_TotalFunction(t *testing.T) {
	// Parse must return a record for any input, never panic.
	inputs := []string{
		"",
		"   \n\t\n   ",
		"\x00\x01\x02\xff\xfe",
		strings.Repeat("a", 100000),
		"VID",
		"Address:",
		"DOB:",
		"S/O",
		"District:\nState:",
		"%PDF-1.4 binary garbage \x89PNG",
	}

	for _, in := range inputs {
		rec := Parse(in)
		_ = rec
	}
}

func TestParse_AadhaarNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"three groups of four", "id 9999 8888 7777 end", "9999 8888 7777"},
		{"eleven digits", "9999 8888 777", ""},
		{"unspaced twelve digits", "999988887777", ""},
		{"first match wins", "1111 2222 3333 and 4444 5555 6666", "1111 2222 3333"},
		{"kept even when invalid elsewhere", "0000 0000 0000", "0000 0000 0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).AadhaarNumber; got != tt.want {
				t.Errorf("AadhaarNumber = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_VID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labelled", "VID: 1234 5678 9012 3456", "1234 5678 9012 3456"},
		{"label without colon", "VID 1234 5678 9012 3456", "1234 5678 9012 3456"},
		{"unlabelled groups ignored", "1234 5678 9012 3456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).VID; got != tt.want {
				t.Errorf("VID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_BilingualName(t *testing.T) {
	text := "பெயர் தமிழ்\nArun Kumar\nDOB: 2/3/1985"
	rec := Parse(text)

	if rec.NameTamil != "பெயர் தமிழ்" {
		t.Errorf("NameTamil = %q", rec.NameTamil)
	}
	if rec.Name != "Arun Kumar" {
		t.Errorf("Name = %q, want %q", rec.Name, "Arun Kumar")
	}
	if rec.DOB != "2/3/1985" {
		t.Errorf("DOB = %q, want %q", rec.DOB, "2/3/1985")
	}
}

func TestParse_NameCleaning(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"marker cut before slash", "தமிழ்\nPriya Raman W/O Kumar\n", "Priya Raman"},
		{"trailing initial removed", "Priya Raman W\n12 street", "Priya Raman"},
		{"whitespace collapsed", "Priya    Raman Iyer\nmore", "Priya Raman Iyer"},
		{"boilerplate skipped", "Government of India\nSignature Not Verified\nPriya Raman\n", "Priya Raman"},
		{"single word rejected", "Priya\n", ""},
		{"digits rejected", "Priya Raman 42\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Name; got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Priya Raman S/O Kumar", "Priya Raman"},
		{"Priya Raman w/o Kumar", "Priya Raman"},
		{"Priya Raman C", "Priya Raman"},
		{"  Priya   Raman  ", "Priya Raman"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanName(tt.in); got != tt.want {
			t.Errorf("cleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Guardian(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"slash marker", "W/O Lakshmi Devi\n", "Lakshmi Devi"},
		{"dot after marker", "C/o. Ganesh\n", "Ganesh"},
		{"colon after marker", "D/O: Meena Kumari\n", "Meena Kumari"},
		{"stops at newline", "S/O Robert Smith\nDOB: 01-02-1990", "Robert Smith"},
		{"absent", "no guardian here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).GuardianName; got != tt.want {
				t.Errorf("GuardianName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_DOB(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dash separator normalized", "DOB: 01-02-1990", "01/02/1990"},
		{"slash separator kept", "DOB: 01/02/1990", "01/02/1990"},
		{"full label", "Date of Birth 7-12-2001", "7/12/2001"},
		{"dotted abbreviation", "D.O.B: 01-02-1990", "01/02/1990"},
		{"two digit year rejected", "DOB: 01-02-90", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).DOB; got != tt.want {
				t.Errorf("DOB = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Gender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"male", "gender male here", "Male"},
		{"female uppercase", "FEMALE", "Female"},
		{"transgender", "Transgender", "Transgender"},
		{"single letter", "xx F yy", "F"},
		{"female not matched inside word", "defemalex", ""},
		{"absent", "nothing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Gender; got != tt.want {
				t.Errorf("Gender = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Address(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"stops at district label",
			"Address: 42 Gandhi Road, Mylapore\nDistrict: Chennai",
			"42 Gandhi Road, Mylapore",
		},
		{
			"stops at pincode line",
			"Address: 42 Gandhi Road\n600004\n",
			"42 Gandhi Road",
		},
		{
			"multiline flattened",
			"Address: 42 Gandhi Road,\nMylapore,\nChennai\nDigitally signed",
			"42 Gandhi Road, Mylapore, Chennai",
		},
		{
			"guardian clause stripped",
			"Address: S/O Robert Smith, 42 Gandhi Road\nState: TN",
			", 42 Gandhi Road",
		},
		{
			"embedded number stripped",
			"Address: 42 Gandhi Road 1234 5678 9012 near park\nVID: x",
			"42 Gandhi Road near park",
		},
		{
			"post office fragment stripped",
			"Address: 42 Gandhi Road, PO: Mylapore, Chennai\n600004",
			"42 Gandhi Road, Chennai",
		},
		{"absent", "no label", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text).Address; got != tt.want {
				t.Errorf("Address = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_DistrictState(t *testing.T) {
	rec := Parse("District: Chennai,\nState: Tamil Nadu,")
	if rec.District != "Chennai" {
		t.Errorf("District = %q, want %q", rec.District, "Chennai")
	}
	if rec.State != "Tamil Nadu" {
		t.Errorf("State = %q, want %q", rec.State, "Tamil Nadu")
	}
}

func TestParse_DigitRunsFirstMatchWins(t *testing.T) {
	// Unanchored 6- and 10-digit heuristics pick the first run in document
	// order, even when later runs are the intended values. Preserved
	// behavior, documented limitation.
	rec := Parse("123456 then 654321 and 1112223334 then 9876543210")
	if rec.Pincode != "123456" {
		t.Errorf("Pincode = %q, want first run %q", rec.Pincode, "123456")
	}
	if rec.Phone != "1112223334" {
		t.Errorf("Phone = %q, want first run %q", rec.Phone, "1112223334")
	}
}
