package service

import (
	"time"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/pkg/brdoc"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DimensionLoader turns raw dimension feeds into warehouse rows through the
// resolver. Row failures are collected in the entity report; only storage
// errors abort a batch.
type DimensionLoader struct {
	resolver *DimensionResolver
	logger   *logrus.Logger
}

func NewDimensionLoader(resolver *DimensionResolver) *DimensionLoader {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &DimensionLoader{resolver: resolver, logger: logger}
}

func (l *DimensionLoader) LoadCompanies(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "companies", Input: len(rows)}

	for i, row := range rows {
		code, ok := row.GetInt("CODIGOEMPRESA")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOEMPRESA", "missing company code")
			continue
		}
		name, ok := row.Get("NOMEEMPRESA")
		if !ok {
			report.AddError(i, etl.ErrValidation, "NOMEEMPRESA", "missing company name")
			continue
		}

		cnpj, hasCNPJ := row.Get("CNPJ")
		if hasCNPJ {
			cnpj = brdoc.CleanDigits(cnpj)
			if !brdoc.ValidCNPJ(cnpj) {
				report.AddError(i, etl.ErrValidation, "CNPJ", "invalid CNPJ check digits")
				continue
			}
		}

		situation, ok := row.Get("SITUACAO")
		if !ok {
			situation = models.CompanySituationActive
		}

		company := models.Company{
			CompanyCode: code,
			Name:        name,
			CNPJ:        cnpj,
			Situation:   situation,
		}
		if _, err := l.resolver.ResolveCompany(tx, &company); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (l *DimensionLoader) LoadUnits(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "units", Input: len(rows)}

	for i, row := range rows {
		companyCode, ok := row.GetInt("CODIGOEMPRESA")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOEMPRESA", "missing company code")
			continue
		}
		unitCode, ok := row.Get("CODIGOUNIDADE")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOUNIDADE", "missing unit code")
			continue
		}
		name, ok := row.Get("NOMEUNIDADE")
		if !ok {
			report.AddError(i, etl.ErrValidation, "NOMEUNIDADE", "missing unit name")
			continue
		}

		unit := models.Unit{
			CompanyCode: companyCode,
			UnitCode:    unitCode,
			Name:        name,
			Status:      row["STATUS"],
			CNPJ:        brdoc.CleanDigits(row["CNPJUNIDADE"]),
			Address:     row["ENDERECO"],
			Number:      row["NUMEROENDERECO"],
			District:    row["BAIRRO"],
			City:        row["CIDADE"],
			State:       row["UF"],
			PostalCode:  row["CEP"],
			CNAE:        row["CNAE"],
			CNAE20:      row["CNAE20"],
			CNAE7:       row["CNAE7"],
		}
		if _, err := l.resolver.ResolveUnit(tx, &unit); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (l *DimensionLoader) LoadSectors(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "sectors", Input: len(rows)}

	for i, row := range rows {
		companyCode, ok := row.GetInt("CODIGOEMPRESA")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOEMPRESA", "missing company code")
			continue
		}
		sectorCode, ok := row.Get("CODIGOSETOR")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOSETOR", "missing sector code")
			continue
		}
		name, ok := row.Get("NOMESETOR")
		if !ok {
			report.AddError(i, etl.ErrValidation, "NOMESETOR", "missing sector name")
			continue
		}

		sector := models.Sector{CompanyCode: companyCode, SectorCode: sectorCode, Name: name}
		if _, err := l.resolver.ResolveSector(tx, &sector); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (l *DimensionLoader) LoadRoles(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "roles", Input: len(rows)}

	for i, row := range rows {
		roleCode, ok := row.Get("CODIGOCARGO")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOCARGO", "missing role code")
			continue
		}
		name, ok := row.Get("NOMECARGO")
		if !ok {
			report.AddError(i, etl.ErrValidation, "NOMECARGO", "missing role name")
			continue
		}

		role := models.Role{RoleCode: roleCode, Name: name, CBO: row["CBOCARGO"]}
		if _, err := l.resolver.ResolveRole(tx, &role); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (l *DimensionLoader) LoadExamTypes(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "exam_types", Input: len(rows)}

	for i, row := range rows {
		examCode, ok := row.GetInt("CODIGOEXAME")
		if !ok {
			report.AddError(i, etl.ErrValidation, "CODIGOEXAME", "missing exam code")
			continue
		}
		name, ok := row.Get("NOMEEXAME")
		if !ok {
			report.AddError(i, etl.ErrValidation, "NOMEEXAME", "missing exam name")
			continue
		}

		periodicity, _ := row.GetInt("PERIODICIDADE")
		mandatory := true
		if _, present := row.Get("OBRIGATORIO"); present {
			mandatory = row.GetBool("OBRIGATORIO")
		}

		examType := models.ExamType{
			ExamCode:        examCode,
			Name:            name,
			PeriodicityDays: periodicity,
			Mandatory:       mandatory,
		}
		if _, err := l.resolver.ResolveExamType(tx, &examType); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

// LoadEmployees validates, cleans and upserts the versioned employee
// dimension. asOf bounds any version rotated by this batch.
func (l *DimensionLoader) LoadEmployees(tx *gorm.DB, rows []etl.Row, asOf time.Time) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "employees", Input: len(rows)}

	for i, row := range rows {
		employee, rowErr := l.employeeFromRow(row)
		if rowErr != nil {
			report.Errors = append(report.Errors, *rowErr)
			report.Errors[len(report.Errors)-1].Row = i
			l.logger.WithFields(logrus.Fields{
				"row":   i,
				"field": rowErr.Field,
			}).Warn("Employee row rejected")
			continue
		}

		if _, err := l.resolver.UpsertEmployee(tx, employee, asOf); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

// employeeFromRow maps one raw employee record, applying the domain rules:
// CPF checksum, email shape, admission before dismissal.
func (l *DimensionLoader) employeeFromRow(row etl.Row) (*models.Employee, *etl.RowError) {
	employeeCode, ok := row.GetInt("CODIGO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGO", Detail: "missing employee code"}
	}
	companyCode, ok := row.GetInt("CODIGOEMPRESA")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOEMPRESA", Detail: "missing company code"}
	}
	name, ok := row.Get("NOME")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "NOME", Detail: "missing name"}
	}

	cpf := brdoc.CleanDigits(row["CPF"])
	if cpf != "" && !brdoc.ValidCPF(cpf) {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CPF", Detail: "invalid CPF check digits"}
	}

	email, _ := row.Get("EMAIL")
	if !etl.ValidEmail(email) {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "EMAIL", Detail: "invalid email format"}
	}

	birthDate, ok := row.GetDate("DATA_NASCIMENTO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DATA_NASCIMENTO", Detail: "missing or unparseable birth date"}
	}
	sex, ok := row.GetInt("SEXO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "SEXO", Detail: "missing sex code"}
	}
	registration, ok := row.Get("MATRICULAFUNCIONARIO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "MATRICULAFUNCIONARIO", Detail: "missing registration"}
	}
	situation, ok := row.Get("SITUACAO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "SITUACAO", Detail: "missing situation"}
	}

	admissionDate, ok := row.GetDate("DATA_ADMISSAO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DATA_ADMISSAO", Detail: "missing or unparseable admission date"}
	}
	dismissalDate, hasDismissal := row.GetDate("DATA_DEMISSAO")
	if !etl.ValidDateOrder(admissionDate, dismissalDate, hasDismissal) {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DATA_DEMISSAO", Detail: "dismissal before admission"}
	}

	maritalStatus, _ := row.GetInt("ESTADOCIVIL")
	color, _ := row.GetInt("COR")
	education, _ := row.GetInt("ESCOLARIDADE")
	contractType, _ := row.GetInt("TIPOCONTATACAO")
	shiftRotation, _ := row.GetInt("REGIMEREVEZAMENTO")
	workShift, _ := row.GetInt("TURNOTRABALHO")

	employee := &models.Employee{
		EmployeeCode:   employeeCode,
		CompanyCode:    companyCode,
		Name:           name,
		CPF:            cpf,
		RG:             row["RG"],
		RGState:        row["UFRG"],
		RGIssuer:       row["ORGAOEMISSORRG"],
		BirthDate:      birthDate,
		Sex:            sex,
		MaritalStatus:  maritalStatus,
		Color:          color,
		Education:      education,
		BirthPlace:     row["NATURALIDADE"],
		MotherName:     row["NM_MAE_FUNCIONARIO"],
		Registration:   registration,
		RegistrationHR: row["MATRICULARH"],
		Situation:      situation,
		AdmissionDate:  admissionDate,
		ContractType:   contractType,
		UnitCode:       row["CODIGOUNIDADE"],
		UnitName:       row["NOMEUNIDADE"],
		SectorCode:     row["CODIGOSETOR"],
		SectorName:     row["NOMESETOR"],
		RoleCode:       row["CODIGOCARGO"],
		RoleName:       row["NOMECARGO"],
		RoleCBO:        row["CBOCARGO"],
		CostCenter:     row["CCUSTO"],
		CostCenterName: row["NOMECENTROCUSTO"],
		Address:        row["ENDERECO"],
		AddressNumber:  row["NUMERO_ENDERECO"],
		District:       row["BAIRRO"],
		City:           row["CIDADE"],
		State:          row["UF"],
		PostalCode:     row["CEP"],
		HomePhone:      brdoc.CleanDigits(row["TELEFONERESIDENCIAL"]),
		MobilePhone:    brdoc.CleanDigits(row["TELEFONECELULAR"]),
		WorkPhone:      brdoc.CleanDigits(row["TELCOMERCIAL"]),
		Email:          email,
		Extension:      row["RAMAL"],
		ShiftRotation:  shiftRotation,
		WorkRegime:     row["REGIMETRABALHO"],
		WorkShift:      workShift,
		Disabled:       row.GetBool("DEFICIENTE"),
		Disability:     row["DEFICIENCIA"],
		PIS:            row["PIS"],
		CTPS:           row["CTPS"],
		CTPSSeries:     row["SERIECTPS"],
	}

	if hasDismissal {
		employee.DismissalDate = &dismissalDate
	}
	if lastChanged, ok := row.GetDate("DATAULTALTERACAO"); ok {
		employee.LastChangedAt = &lastChanged
	}

	return employee, nil
}
