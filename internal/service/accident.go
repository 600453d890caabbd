package service

import (
	"fmt"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccidentService builds work-accident (CAT) facts. The external report
// number is globally unique; a number already stored or repeated in the
// batch rejects the row.
type AccidentService struct {
	repos    *repository.Set
	resolver *DimensionResolver
	logger   *logrus.Logger
}

func NewAccidentService(repos *repository.Set, resolver *DimensionResolver) *AccidentService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AccidentService{repos: repos, resolver: resolver, logger: logger}
}

func (s *AccidentService) LoadBatch(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "accidents", Input: len(rows)}
	repo := s.repos.Accidents.WithTx(tx)

	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		fact, rowErr, err := s.buildFact(tx, row)
		if err != nil {
			return report, err
		}
		if rowErr == nil {
			switch {
			case seen[fact.ReportNumber]:
				rowErr = &etl.RowError{Kind: etl.ErrDuplicate, Field: "NUMEROCAT", Detail: "report number repeated in batch"}
			default:
				exists, err := repo.ExistsByReportNumber(fact.ReportNumber)
				if err != nil {
					return report, err
				}
				if exists {
					rowErr = &etl.RowError{Kind: etl.ErrDuplicate, Field: "NUMEROCAT", Detail: "report number already stored"}
				}
			}
			if rowErr == nil {
				seen[fact.ReportNumber] = true
			}
		}

		if rowErr != nil {
			rowErr.Row = i
			report.Errors = append(report.Errors, *rowErr)
			s.logger.WithFields(logrus.Fields{
				"row":  i,
				"kind": rowErr.Kind,
			}).Warn("Accident row rejected")
			continue
		}

		if err := repo.Create(fact); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (s *AccidentService) buildFact(tx *gorm.DB, row etl.Row) (*models.AccidentReport, *etl.RowError, error) {
	companyCode, ok := row.GetInt("CODIGOEMPRESA")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOEMPRESA", Detail: "missing company code"}, nil
	}
	employeeCode, ok := row.GetInt("CODIGOFUNCIONARIO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOFUNCIONARIO", Detail: "missing employee code"}, nil
	}
	reportNumber, ok := row.Get("NUMEROCAT")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "NUMEROCAT", Detail: "missing report number"}, nil
	}
	accidentDate, ok := row.GetDate("DATAACIDENTE")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "DATAACIDENTE", Detail: "missing or unparseable accident date"}, nil
	}

	employee, err := s.resolver.FindActiveEmployee(tx, companyCode, employeeCode)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		detail := fmt.Sprintf("no active employee for company=%d code=%d", companyCode, employeeCode)
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "CODIGOFUNCIONARIO", Detail: detail}, nil
	}

	accidentDay, err := s.resolver.FindTimeDay(tx, accidentDate)
	if err != nil {
		return nil, nil, err
	}
	if accidentDay == nil {
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "DATAACIDENTE", Detail: "accident date outside the time dimension"}, nil
	}

	daysLost, _ := row.GetInt("DIASPERDIDOS")
	daysAway, _ := row.GetInt("DIASDEBITADOS")
	cost, _ := row.GetFloat("CUSTO")

	fact := &models.AccidentReport{
		EmployeeID:    employee.ID,
		AccidentDayID: accidentDay.ID,

		CompanyCode:  companyCode,
		EmployeeCode: employeeCode,
		ReportNumber: reportNumber,

		AccidentDate:      accidentDate,
		Location:          row["LOCALACIDENTE"],
		LocationDetail:    row["ESPECIFICACAOLOCALACIDENTE"],
		Occurrence:        row["OCORRENCIA"],
		BodyPartAffected:  row["PARTEATINGIDA"],
		Kind:              row["TIPO"],
		PotentialAccident: row.GetBool("ACIDENTEPOTENCIAL"),

		Death:                row.GetBool("OBITO"),
		Retired:              row.GetBool("APOSENTADO"),
		Leave:                row.GetBool("AFASTAMENTO"),
		LeaveDuringTreatment: row.GetBool("AFASTAMENTODURANTETRATAMENTO"),

		DaysLost:   daysLost,
		DaysAway:   daysAway,
		Cost:       cost,
		AgeAtEvent: etl.Age(employee.BirthDate, accidentDate),

		UnitCode:   employee.UnitCode,
		SectorCode: employee.SectorCode,
		Area:       row["AREA"],
		LocalCNPJ:  row["CNPJLOCAL"],
		Reason:     row["MOTIVO"],
	}

	if accidentTime, ok := row.GetTime("HORAACIDENTE"); ok {
		fact.AccidentTime = accidentTime.Format("15:04")
	}
	if attendanceDate, ok := row.GetDate("DATAATENDIMENTO"); ok {
		fact.AttendanceDate = &attendanceDate
		day, err := s.resolver.FindTimeDay(tx, attendanceDate)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			fact.AttendanceDayID = &day.ID
		}
	}
	if attendanceTime, ok := row.GetTime("HORAATENDIMENTO"); ok {
		fact.AttendanceTime = attendanceTime.Format("15:04")
	}
	if registrationDate, ok := row.GetDate("DATAREGISTRO"); ok {
		fact.RegistrationDate = &registrationDate
		day, err := s.resolver.FindTimeDay(tx, registrationDate)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			fact.RegistrationDayID = &day.ID
		}
	}
	if lastWorkDay, ok := row.GetDate("ULTIMODIATRABALHADO"); ok {
		fact.LastWorkDay = &lastWorkDay
	}

	return fact, nil, nil
}
