package service

import (
	"fmt"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AbsenceService builds medical-leave facts. The source feed has no
// employee code, so rows are matched to the active employee version through
// the composite profile (company, unit name, sector name, birth date, sex);
// rows that match nothing are reported, never loaded with a fabricated key.
type AbsenceService struct {
	repos    *repository.Set
	resolver *DimensionResolver
	logger   *logrus.Logger
}

func NewAbsenceService(repos *repository.Set, resolver *DimensionResolver) *AbsenceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AbsenceService{repos: repos, resolver: resolver, logger: logger}
}

func (s *AbsenceService) LoadBatch(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "absences", Input: len(rows)}
	repo := s.repos.Absences.WithTx(tx)

	for i, row := range rows {
		absence, rowErr, err := s.buildFact(tx, row)
		if err != nil {
			return report, err
		}
		if rowErr != nil {
			rowErr.Row = i
			report.Errors = append(report.Errors, *rowErr)
			s.logger.WithFields(logrus.Fields{
				"row":   i,
				"kind":  rowErr.Kind,
				"field": rowErr.Field,
			}).Warn("Absence row rejected")
			continue
		}

		if err := repo.Create(absence); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

// buildFact validates and transforms one leave record. The second return is
// a row-level rejection, the third a storage error that aborts the batch.
func (s *AbsenceService) buildFact(tx *gorm.DB, row etl.Row) (*models.Absence, *etl.RowError, error) {
	companyCode, ok := row.GetInt("EMPRESA")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "EMPRESA", Detail: "missing company code"}, nil
	}
	birthDate, ok := row.GetDate("DT_NASCIMENTO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DT_NASCIMENTO", Detail: "missing or unparseable birth date"}, nil
	}
	sex, ok := row.GetInt("SEXO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "SEXO", Detail: "missing sex code"}, nil
	}
	certificateType, ok := row.GetInt("TIPO_ATESTADO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "TIPO_ATESTADO", Detail: "missing certificate type"}, nil
	}
	startDate, ok := row.GetDate("DT_INICIO_ATESTADO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DT_INICIO_ATESTADO", Detail: "missing or unparseable start date"}, nil
	}
	endDate, hasEnd := row.GetDate("DT_FIM_ATESTADO")
	if !etl.ValidDateOrder(startDate, endDate, hasEnd) {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DT_FIM_ATESTADO", Detail: "end before start"}, nil
	}

	daysAbsent, hasDays := row.GetFloat("DIAS_AFASTADOS")
	if hasDays && daysAbsent < 0 {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DIAS_AFASTADOS", Detail: "negative day count"}, nil
	}
	if !hasDays {
		// Open-ended leaves count the start day alone.
		until := startDate
		if hasEnd {
			until = endDate
		}
		daysAbsent = float64(etl.BusinessDays(startDate, until))
	}

	unitName, _ := row.Get("UNIDADE")
	sectorName, _ := row.Get("SETOR")

	employee, err := s.resolver.FindActiveEmployeeByProfile(tx, companyCode, unitName, sectorName, birthDate, sex)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		detail := fmt.Sprintf("no active employee for company=%d unit=%q sector=%q", companyCode, unitName, sectorName)
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "EMPRESA", Detail: detail}, nil
	}

	startDay, err := s.resolver.FindTimeDay(tx, startDate)
	if err != nil {
		return nil, nil, err
	}
	if startDay == nil {
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "DT_INICIO_ATESTADO", Detail: "start date outside the time dimension"}, nil
	}

	var endDayID *uint
	if hasEnd {
		endDay, err := s.resolver.FindTimeDay(tx, endDate)
		if err != nil {
			return nil, nil, err
		}
		if endDay == nil {
			return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "DT_FIM_ATESTADO", Detail: "end date outside the time dimension"}, nil
		}
		endDayID = &endDay.ID
	}

	absence := &models.Absence{
		EmployeeID:   employee.ID,
		StartDayID:   startDay.ID,
		EndDayID:     endDayID,
		CompanyCode:  companyCode,
		UnitName:     unitName,
		SectorName:   sectorName,
		BirthDate:    birthDate,
		Sex:          sex,
		Registration: row["MATRICULA_FUNC"],

		CertificateType: certificateType,
		StartDate:       startDate,
		HoursAbsent:     row["HORAS_AFASTADO"],
		DaysAbsent:      daysAbsent,
		AgeAtStart:      etl.Age(birthDate, startDate),

		ICDCode:        row["CID_PRINCIPAL"],
		ICDDescription: row["DESCRICAO_CID"],
		PathologyGroup: row["GRUPO_PATOLOGICO"],
		LeaveType:      row["TIPO_LICENCA"],

		SexLabel:             models.SexLabel(sex),
		CertificateTypeLabel: models.CertificateTypeLabel(certificateType),
		DurationBucket:       models.DurationBucketFor(daysAbsent),
	}
	if hasEnd {
		absence.EndDate = &endDate
	}
	if startTime, ok := row.GetTime("HORA_INICIO_ATESTADO"); ok {
		absence.StartTime = startTime.Format("15:04")
	}
	if endTime, ok := row.GetTime("HORA_FIM_ATESTADO"); ok {
		absence.EndTime = endTime.Format("15:04")
	}

	return absence, nil, nil
}
