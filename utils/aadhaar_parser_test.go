package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAadhaarDataEmptyText(t *testing.T) {
	data := ParseAadhaarData("")

	assert.Equal(t, "", data.Name)
	assert.Equal(t, "", data.FatherName)
	assert.Equal(t, "", data.DateOfBirth)
	assert.Equal(t, "", data.IDNumber)
	assert.Equal(t, "", data.Address)
	assert.Equal(t, "", data.Gender)
	assert.False(t, data.HasData())
}

func TestParseAadhaarDataNoStructure(t *testing.T) {
	data := ParseAadhaarData("~~ !! @@ ## $$ %% ^^ &&")

	assert.False(t, data.HasData())
}

func TestParseAadhaarNumber(t *testing.T) {
	data := ParseAadhaarData("Aadhaar No 1234 5678 9012 issued by UIDAI")
	assert.Equal(t, "1234 5678 9012", data.IDNumber)

	// Ungrouped digits keep their original grouping
	data = ParseAadhaarData("Aadhaar No 123456789012")
	assert.Equal(t, "123456789012", data.IDNumber)
}

func TestParseDateOfBirth(t *testing.T) {
	data := ParseAadhaarData("DOB: 15/08/1990")
	assert.Equal(t, "15/08/1990", data.DateOfBirth)

	data = ParseAadhaarData("Date of Birth 23-09-2004")
	assert.Equal(t, "23-09-2004", data.DateOfBirth)

	// No calendar validation: month > 12 still matches
	data = ParseAadhaarData("DOB: 15/13/1990")
	assert.Equal(t, "15/13/1990", data.DateOfBirth)
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, "Male", ParseAadhaarData("DOB: 15/08/1990 Male").Gender)
	assert.Equal(t, "FEMALE", ParseAadhaarData("Gender: FEMALE").Gender)
	assert.Equal(t, "F", ParseAadhaarData("Sex F 1234").Gender)

	// Single letters only match as whole words
	assert.Equal(t, "", ParseAadhaarData("SHARMA FAMILY").Gender)
}

func TestParseNameAndFatherName(t *testing.T) {
	data := ParseAadhaarData("RAJESH KUMAR SHARMA S/O SURESH KUMAR")

	assert.Equal(t, "RAJESH KUMAR SHARMA", data.Name)
	assert.Equal(t, "SURESH KUMAR", data.FatherName)
}

func TestParseFatherNameAfterLabel(t *testing.T) {
	data := ParseAadhaarData("Father: MAHESH CHANDRA GUPTA, Ward 7")

	// The capture is lazy: it stops at the first boundary past the
	// minimum length, so the third name word is not included.
	assert.Equal(t, "MAHESH CHANDRA", data.FatherName)
}

func TestParseNameFallbackFromLines(t *testing.T) {
	text := "GOVERNMENT OF INDIA\nRAMESH CHANDRA\n1234 5678 9012"

	data := ParseAadhaarData(text)

	// No relationship marker anywhere, so the line scan kicks in and
	// skips the issuing-authority header.
	assert.Equal(t, "RAMESH CHANDRA", data.Name)
	assert.Equal(t, "1234 5678 9012", data.IDNumber)
}

func TestParseAddressUpToPinCode(t *testing.T) {
	data := ParseAadhaarData("Address: HOUSE NO 12 GANDHI NAGAR JAIPUR RAJASTHAN 302015")

	assert.Equal(t, "HOUSE NO 12 GANDHI NAGAR JAIPUR RAJASTHAN", data.Address)
}

func TestParseFullLetter(t *testing.T) {
	text := "RAJESH KUMAR SHARMA S/O SURESH KUMAR\n" +
		"DOB: 15/08/1990   Male\n" +
		"1234 5678 9012\n" +
		"Address: HOUSE NO 12, GANDHI NAGAR, JAIPUR 302015"

	data := ParseAadhaarData(text)

	assert.Equal(t, "RAJESH KUMAR SHARMA", data.Name)
	assert.Equal(t, "SURESH KUMAR", data.FatherName)
	assert.Equal(t, "15/08/1990", data.DateOfBirth)
	assert.Equal(t, "Male", data.Gender)
	assert.Equal(t, "1234 5678 9012", data.IDNumber)
	assert.Equal(t, "HOUSE NO 12, GANDHI NAGAR, JAIPUR", data.Address)
	assert.True(t, data.HasData())
}

func TestParseIsDeterministic(t *testing.T) {
	text := "RAJESH KUMAR SHARMA S/O SURESH KUMAR DOB: 15/08/1990"

	first := ParseAadhaarData(text)
	second := ParseAadhaarData(text)

	assert.Equal(t, first, second)
}
