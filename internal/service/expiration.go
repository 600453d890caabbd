package service

import (
	"fmt"
	"time"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExpirationService builds document-expiration facts. Days-to-expiry is
// measured against an injectable clock so runs are reproducible; rows
// without an expiry date land in the SEM_DATA category instead of being
// dropped.
type ExpirationService struct {
	repos    *repository.Set
	resolver *DimensionResolver
	logger   *logrus.Logger

	// Now supplies the reference instant for days-to-expiry.
	Now func() time.Time
}

func NewExpirationService(repos *repository.Set, resolver *DimensionResolver) *ExpirationService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ExpirationService{
		repos:    repos,
		resolver: resolver,
		logger:   logger,
		Now:      time.Now,
	}
}

func (s *ExpirationService) LoadBatch(tx *gorm.DB, rows []etl.Row) (*etl.EntityReport, error) {
	report := &etl.EntityReport{Entity: "expirations", Input: len(rows)}
	repo := s.repos.Expirations.WithTx(tx)

	today := truncateToDay(s.Now())

	for i, row := range rows {
		fact, rowErr, err := s.buildFact(tx, row, today)
		if err != nil {
			return report, err
		}
		if rowErr != nil {
			rowErr.Row = i
			report.Errors = append(report.Errors, *rowErr)
			s.logger.WithFields(logrus.Fields{
				"row":  i,
				"kind": rowErr.Kind,
			}).Warn("Expiration row rejected")
			continue
		}

		if err := repo.Create(fact); err != nil {
			return report, err
		}
		report.Loaded++
	}

	return report, nil
}

func (s *ExpirationService) buildFact(tx *gorm.DB, row etl.Row, today time.Time) (*models.DocumentExpiration, *etl.RowError, error) {
	companyCode, ok := row.GetInt("codigoEmpresa")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "codigoEmpresa", Detail: "missing company code"}, nil
	}
	productCode, ok := row.Get("codigoProduto")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "codigoProduto", Detail: "missing product code"}, nil
	}
	productName, ok := row.Get("nomeProduto")
	if !ok {
		return nil, &etl.RowError{Kind: etl.ErrValidation, Field: "nomeProduto", Detail: "missing product name"}, nil
	}

	company, err := s.repos.Companies.WithTx(tx).FindByCode(companyCode)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, &etl.RowError{Kind: etl.ErrLookupMiss, Field: "codigoEmpresa", Detail: fmt.Sprintf("unknown company code %d", companyCode)}, nil
	}

	fact := &models.DocumentExpiration{
		CompanyID: company.ID,

		CompanyCode: companyCode,
		UnitCode:    row["codigoUnidade"],
		ProductCode: productCode,

		CompanyName: company.Name,
		UnitName:    row["nomeUnidade"],
		UnitStatus:  row["statusUnidade"],
		UnitCNPJ:    row["cnpjUnidade"],

		ProductName: productName,
		Situation:   row["situacao"],
		RiskLevel:   row["grauRisco"],
		Legend:      row["legenda"],

		LastServiceNote: row["observacaoUltimoServicoRealizado"],
	}

	expiryDate, hasExpiry := row.GetDate("dataVencimento")
	if hasExpiry {
		fact.ExpiryDate = &expiryDate
		days := int(expiryDate.Sub(today).Hours() / 24)
		fact.DaysToExpiry = &days

		day, err := s.resolver.FindTimeDay(tx, expiryDate)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			fact.ExpiryDayID = &day.ID
		}

		fact.Status = models.ExpiryStatusFor(days, true)
		fact.Expired = days < 0
		fact.Critical = days >= 0 && days <= 30
		fact.Warning = days > 30 && days <= 60
	} else {
		fact.Status = models.ExpiryStatusFor(0, false)
	}

	if lastService, ok := row.GetDate("dataRealizacaoUltimoServicoRealizado"); ok {
		fact.LastServiceDate = &lastService
		day, err := s.resolver.FindTimeDay(tx, lastService)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			fact.LastServiceDayID = &day.ID
		}
	}
	if forecast, ok := row.GetDate("dataPrevisaoUltimoServicoRealizado"); ok {
		fact.ForecastServiceDate = &forecast
		day, err := s.resolver.FindTimeDay(tx, forecast)
		if err != nil {
			return nil, nil, err
		}
		if day != nil {
			fact.ForecastDayID = &day.ID
		}
	}

	return fact, nil, nil
}
