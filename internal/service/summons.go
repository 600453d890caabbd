package service

import (
	"fmt"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SummonsService builds exam-convocation facts. The pair (employee code,
// exam code) is unique per run: duplicates inside the batch and collisions
// with already stored pairs are rejected, first occurrence wins.
type SummonsService struct {
	repos    *repository.Set
	resolver *DimensionResolver
	logger   *logrus.Logger
}

func NewSummonsService(repos *repository.Set, resolver *DimensionResolver) *SummonsService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &SummonsService{repos: repos, resolver: resolver, logger: logger}
}

func (s *SummonsService) LoadBatch(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "summonses", Input: len(rows)}
	repo := s.repos.Summonses.WithTx(tx)

	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		summons, rowErr, err := s.buildFact(tx, row)
		if err != nil {
			return report, err
		}
		if rowErr == nil {
			key := fmt.Sprintf("%d/%d", summons.EmployeeCode, summons.ExamCode)
			switch {
			case seen[key]:
				rowErr = &etl.RowError{Kind: etl.ErrDuplicate, Field: "CODIGOEXAME", Detail: "employee/exam pair repeated in batch"}
			default:
				exists, err := repo.ExistsByEmployeeAndExam(summons.EmployeeCode, summons.ExamCode)
				if err != nil {
					return report, err
				}
				if exists {
					rowErr = &etl.RowError{Kind: etl.ErrDuplicate, Field: "CODIGOEXAME", Detail: "employee/exam pair already stored"}
				}
			}
			if rowErr == nil {
				seen[key] = true
			}
		}

		if rowErr != nil {
			rowErr.Row = i
			report.Errors = append(report.Errors, *rowErr)
			s.logger.WithFields(logrus.Fields{
				"row":  i,
				"kind": rowErr.Kind,
			}).Warn("Summons row rejected")
			continue
		}

		if err := repo.Create(summons); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (s *SummonsService) buildFact(tx *gorm.DB, row etl.Row) (*models.Summons, *etl.RowError, error) {
	companyCode, ok := row.GetInt("CODIGOEMPRESA")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOEMPRESA", Detail: "missing company code"}, nil
	}
	employeeCode, ok := row.GetInt("CODIGOFUNCIONARIO")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOFUNCIONARIO", Detail: "missing employee code"}, nil
	}
	examCode, ok := row.GetInt("CODIGOEXAME")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "CODIGOEXAME", Detail: "missing exam code"}, nil
	}

	employee, err := s.resolver.FindActiveEmployee(tx, companyCode, employeeCode)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		detail := fmt.Sprintf("no active employee for company=%d code=%d", companyCode, employeeCode)
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "CODIGOFUNCIONARIO", Detail: detail}, nil
	}

	examType, err := s.repos.ExamTypes.WithTx(tx).FindByCode(examCode)
	if err != nil {
		return nil, nil, err
	}
	if examType == nil {
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "CODIGOEXAME", Detail: fmt.Sprintf("unknown exam code %d", examCode)}, nil
	}

	periodicity, hasPeriodicity := row.GetInt("PERIODICIDADE")
	if !hasPeriodicity {
		periodicity = examType.PeriodicityDays
	}
	redo := row.GetBool("REFAZER")

	summons := &models.Summons{
		EmployeeID: employee.ID,
		ExamTypeID: examType.ID,

		CompanyCode:  companyCode,
		EmployeeCode: employeeCode,
		ExamCode:     examCode,

		CPF:          employee.CPF,
		Registration: employee.Registration,
		EmployeeName: employee.Name,
		Email:        employee.Email,
		Phone:        employee.MobilePhone,

		ExamName:        examType.Name,
		PeriodicityDays: periodicity,
		Redo:            redo,

		UnitName:   employee.UnitName,
		City:       employee.City,
		State:      employee.State,
		District:   employee.District,
		Address:    employee.Address,
		PostalCode: employee.PostalCode,
		SectorName: employee.SectorName,
		RoleName:   employee.RoleName,
	}
	admission := employee.AdmissionDate
	summons.AdmissionDate = &admission

	if cnpj, ok := row.Get("CNPJUNIDADE"); ok {
		summons.UnitCNPJ = cnpj
	}

	lastRequest, hasLastRequest := row.GetDate("DATAULTIMOPEDIDO")
	if hasLastRequest {
		summons.LastRequestDate = &lastRequest
		day, err := s.resolver.FindTimeDay(tx, lastRequest)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			summons.LastRequestDayID = &day.ID
		}
	}
	if resultDate, ok := row.GetDate("DATARESULTADO"); ok {
		summons.ResultDate = &resultDate
		day, err := s.resolver.FindTimeDay(tx, resultDate)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			summons.ResultDayID = &day.ID
		}
	}

	summons.ConvocationKind = models.ClassifyConvocation(redo, hasLastRequest)

	return summons, nil, nil
}
