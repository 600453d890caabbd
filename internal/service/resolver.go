package service

import (
	"time"

	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DimensionResolver turns natural business keys into dimension surrogate
// keys. Reference dimensions are find-or-create with overwrite-on-reload;
// the employee dimension is versioned (SCD Type 2).
type DimensionResolver struct {
	repos  *repository.Set
	logger *logrus.Logger
}

func NewDimensionResolver(repos *repository.Set) *DimensionResolver {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &DimensionResolver{repos: repos, logger: logger}
}

// ResolveCompany returns the surrogate key for a company code, creating the
// row or overwriting its attributes on natural-key collision.
func (r *DimensionResolver) ResolveCompany(tx *gorm.DB, company *models.Company) (uint, error) {
	repo := r.repos.Companies.WithTx(tx)

	existing, err := repo.FindByCode(company.CompanyCode)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := repo.Create(company); err != nil {
			return 0, err
		}
		return company.ID, nil
	}

	company.ID = existing.ID
	company.CreatedAt = existing.CreatedAt
	if err := repo.Update(company); err != nil {
		return 0, err
	}
	return company.ID, nil
}

func (r *DimensionResolver) ResolveUnit(tx *gorm.DB, unit *models.Unit) (uint, error) {
	repo := r.repos.Units.WithTx(tx)

	existing, err := repo.FindByNaturalKey(unit.CompanyCode, unit.UnitCode)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := repo.Create(unit); err != nil {
			return 0, err
		}
		return unit.ID, nil
	}

	unit.ID = existing.ID
	unit.CreatedAt = existing.CreatedAt
	if err := repo.Update(unit); err != nil {
		return 0, err
	}
	return unit.ID, nil
}

func (r *DimensionResolver) ResolveSector(tx *gorm.DB, sector *models.Sector) (uint, error) {
	repo := r.repos.Sectors.WithTx(tx)

	existing, err := repo.FindByNaturalKey(sector.CompanyCode, sector.SectorCode)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := repo.Create(sector); err != nil {
			return 0, err
		}
		return sector.ID, nil
	}

	sector.ID = existing.ID
	sector.CreatedAt = existing.CreatedAt
	if err := repo.Update(sector); err != nil {
		return 0, err
	}
	return sector.ID, nil
}

func (r *DimensionResolver) ResolveRole(tx *gorm.DB, role *models.Role) (uint, error) {
	repo := r.repos.Roles.WithTx(tx)

	existing, err := repo.FindByCode(role.RoleCode)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := repo.Create(role); err != nil {
			return 0, err
		}
		return role.ID, nil
	}

	role.ID = existing.ID
	role.CreatedAt = existing.CreatedAt
	if err := repo.Update(role); err != nil {
		return 0, err
	}
	return role.ID, nil
}

func (r *DimensionResolver) ResolveExamType(tx *gorm.DB, examType *models.ExamType) (uint, error) {
	repo := r.repos.ExamTypes.WithTx(tx)

	existing, err := repo.FindByCode(examType.ExamCode)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		if err := repo.Create(examType); err != nil {
			return 0, err
		}
		return examType.ID, nil
	}

	examType.ID = existing.ID
	examType.CreatedAt = existing.CreatedAt
	if err := repo.Update(examType); err != nil {
		return 0, err
	}
	return examType.ID, nil
}

// UpsertEmployee applies SCD Type 2 versioning to the employee dimension:
//   - no active version: insert one valid from asOf;
//   - active version with identical tracked attributes: no-op;
//   - active version that differs: close it at asOf and insert the new
//     version, both inside the caller's transaction so a reader never sees
//     zero or two active versions for the key.
func (r *DimensionResolver) UpsertEmployee(tx *gorm.DB, candidate *models.Employee, asOf time.Time) (uint, error) {
	repo := r.repos.Employees.WithTx(tx)

	current, err := repo.FindActive(candidate.CompanyCode, candidate.EmployeeCode)
	if err != nil {
		return 0, err
	}

	if current == nil {
		candidate.ValidFrom = asOf
		candidate.ValidTo = nil
		candidate.Active = true
		if err := repo.Create(candidate); err != nil {
			return 0, err
		}
		r.logger.WithFields(logrus.Fields{
			"company_code":  candidate.CompanyCode,
			"employee_code": candidate.EmployeeCode,
		}).Debug("New employee version inserted")
		return candidate.ID, nil
	}

	if current.TrackedAttributesEqual(candidate) {
		return current.ID, nil
	}

	if err := repo.CloseVersion(current.ID, asOf); err != nil {
		return 0, err
	}

	candidate.ID = 0
	candidate.ValidFrom = asOf
	candidate.ValidTo = nil
	candidate.Active = true
	if err := repo.Create(candidate); err != nil {
		return 0, err
	}

	r.logger.WithFields(logrus.Fields{
		"company_code":  candidate.CompanyCode,
		"employee_code": candidate.EmployeeCode,
		"closed_id":     current.ID,
		"new_id":        candidate.ID,
	}).Debug("Employee version rotated")

	return candidate.ID, nil
}

// FindActiveEmployee resolves the active version for a natural key, or nil.
func (r *DimensionResolver) FindActiveEmployee(tx *gorm.DB, companyCode, employeeCode int) (*models.Employee, error) {
	return r.repos.Employees.WithTx(tx).FindActive(companyCode, employeeCode)
}

// FindActiveEmployeeByProfile resolves an active version by the composite
// profile key (company, unit name, sector name, birth date, sex). Unmatched
// lookups return nil and are reported by the caller, never fabricated.
func (r *DimensionResolver) FindActiveEmployeeByProfile(tx *gorm.DB, companyCode int, unitName, sectorName string, birthDate time.Time, sex int) (*models.Employee, error) {
	return r.repos.Employees.WithTx(tx).FindActiveByProfile(companyCode, unitName, sectorName, birthDate, sex)
}

// FindTimeDay resolves a calendar date to its dimension row, or nil.
func (r *DimensionResolver) FindTimeDay(tx *gorm.DB, date time.Time) (*models.TimeDay, error) {
	return r.repos.TimeDays.WithTx(tx).FindByDate(date)
}
