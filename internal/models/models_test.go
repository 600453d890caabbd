package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationBucketFor(t *testing.T) {
	tests := []struct {
		days float64
		want string
	}{
		{1, Bucket1Day},
		{2, Bucket2To3},
		{3, Bucket2To3},
		{7, Bucket4To7},
		{8, Bucket8To15},
		{15, Bucket8To15},
		{16, Bucket16To30},
		{30, Bucket16To30},
		{31, BucketOver30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationBucketFor(tt.days), "days=%v", tt.days)
	}
}

func TestExpiryStatusFor(t *testing.T) {
	tests := []struct {
		days    int
		hasDate bool
		want    string
	}{
		{-1, true, StatusExpired},
		{0, true, StatusCritical},
		{15, true, StatusCritical},
		{16, true, StatusWarningHigh},
		{30, true, StatusWarningHigh},
		{31, true, StatusWarningLow},
		{60, true, StatusWarningLow},
		{61, true, StatusOK},
		{0, false, StatusNoDate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpiryStatusFor(tt.days, tt.hasDate), "days=%d hasDate=%v", tt.days, tt.hasDate)
	}
}

func TestClassifyConvocation(t *testing.T) {
	assert.Equal(t, ConvocationRedo, ClassifyConvocation(true, true), "redo wins")
	assert.Equal(t, ConvocationRedo, ClassifyConvocation(true, false))
	assert.Equal(t, ConvocationFirstExam, ClassifyConvocation(false, false))
	assert.Equal(t, ConvocationPeriodic, ClassifyConvocation(false, true))
}

func TestNewTimeDay(t *testing.T) {
	// 2024-02-29: leap day, a Thursday in ISO week 9.
	d := NewTimeDay(time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC), false)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d.Date, "time of day dropped")
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, 1, d.Quarter)
	assert.Equal(t, 2, d.Month)
	assert.Equal(t, 29, d.Day)
	assert.Equal(t, 4, d.Weekday)
	assert.Equal(t, 9, d.WeekOfYear)
	assert.Equal(t, "February", d.MonthName)
	assert.Equal(t, "Thursday", d.WeekdayName)
	assert.False(t, d.IsWeekend)
	assert.False(t, d.IsHoliday)

	sun := NewTimeDay(time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), true)
	assert.Equal(t, 7, sun.Weekday, "Sunday maps to 7")
	assert.True(t, sun.IsWeekend)
	assert.True(t, sun.IsHoliday)
}

func TestSexLabel(t *testing.T) {
	assert.Equal(t, "MASCULINO", SexLabel(SexMale))
	assert.Equal(t, "FEMININO", SexLabel(SexFemale))
	assert.Equal(t, "", SexLabel(9), "unknown code unmapped")
}

func TestMaritalStatusLabel(t *testing.T) {
	assert.Equal(t, "SOLTEIRO(A)", MaritalStatusLabel(1))
	assert.Equal(t, "DIVORCIADO(A)", MaritalStatusLabel(7))
	assert.Equal(t, "", MaritalStatusLabel(0))
}

func TestCertificateTypeLabel(t *testing.T) {
	assert.Equal(t, "MEDICO", CertificateTypeLabel(CertificateMedical))
	assert.Equal(t, "ACIDENTE_TRABALHO", CertificateTypeLabel(CertificateWorkIncident))
	assert.Equal(t, "", CertificateTypeLabel(99))
}

func TestTrackedAttributesEqual(t *testing.T) {
	base := Employee{
		EmployeeCode:  10,
		CompanyCode:   1,
		Name:          "MARIA SILVA",
		CPF:           "11144477735",
		BirthDate:     time.Date(1990, 5, 2, 0, 0, 0, 0, time.UTC),
		Sex:           SexFemale,
		Registration:  "M-10",
		Situation:     EmployeeSituationActive,
		AdmissionDate: time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
		SectorName:    "PRODUCAO",
	}

	same := base
	assert.True(t, base.TrackedAttributesEqual(&same))

	moved := base
	moved.SectorName = "LOGISTICA"
	assert.False(t, base.TrackedAttributesEqual(&moved))

	dismissed := base
	d := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dismissed.DismissalDate = &d
	assert.False(t, base.TrackedAttributesEqual(&dismissed))

	versionOnly := base
	versionOnly.Active = true
	versionOnly.ValidFrom = time.Now()
	assert.True(t, base.TrackedAttributesEqual(&versionOnly), "validity metadata not tracked")
}

func TestAgeBracket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{24, "<25"}, {25, "25-34"}, {34, "25-34"}, {35, "35-44"},
		{44, "35-44"}, {54, "45-54"}, {64, "55-64"}, {65, "65+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBracket(tt.age), "age=%d", tt.age)
	}
}
