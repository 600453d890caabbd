package models

// Closed source-system code tables. Unknown codes map to the empty label so
// callers can tell "unmapped" from any real value.

// Sex codes.
const (
	SexMale   = 1
	SexFemale = 2
)

// SexLabel maps a sex code to its display label.
func SexLabel(code int) string {
	switch code {
	case SexMale:
		return "MASCULINO"
	case SexFemale:
		return "FEMININO"
	}
	return ""
}

// MaritalStatusLabel maps a marital status code (1-7) to its display label.
func MaritalStatusLabel(code int) string {
	switch code {
	case 1:
		return "SOLTEIRO(A)"
	case 2:
		return "CASADO(A)"
	case 3:
		return "SEPARADO(A)"
	case 4:
		return "DESQUITADO(A)"
	case 5:
		return "VIUVO(A)"
	case 6:
		return "OUTROS"
	case 7:
		return "DIVORCIADO(A)"
	}
	return ""
}

// Certificate type codes.
const (
	CertificateMedical      = 1
	CertificateDental       = 2
	CertificateWorkIncident = 3
	CertificateOther        = 4
)

// CertificateTypeLabel maps a medical certificate type code to its label.
func CertificateTypeLabel(code int) string {
	switch code {
	case CertificateMedical:
		return "MEDICO"
	case CertificateDental:
		return "ODONTOLOGICO"
	case CertificateWorkIncident:
		return "ACIDENTE_TRABALHO"
	case CertificateOther:
		return "OUTROS"
	}
	return ""
}
