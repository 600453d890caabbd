package repository

import "gorm.io/gorm"

// Set bundles every warehouse repository. NewSet migrates all tables in
// dimension-before-fact order.
type Set struct {
	Companies   CompanyRepository
	Units       UnitRepository
	Sectors     SectorRepository
	Roles       RoleRepository
	ExamTypes   ExamTypeRepository
	TimeDays    TimeDayRepository
	Employees   EmployeeRepository
	Absences    AbsenceRepository
	Summonses   SummonsRepository
	Accidents   AccidentRepository
	Expirations ExpirationRepository
}

func NewSet(db *gorm.DB) (*Set, error) {
	set := &Set{}
	var err error

	if set.Companies, err = NewGormCompanyRepository(db); err != nil {
		return nil, err
	}
	if set.Units, err = NewGormUnitRepository(db); err != nil {
		return nil, err
	}
	if set.Sectors, err = NewGormSectorRepository(db); err != nil {
		return nil, err
	}
	if set.Roles, err = NewGormRoleRepository(db); err != nil {
		return nil, err
	}
	if set.ExamTypes, err = NewGormExamTypeRepository(db); err != nil {
		return nil, err
	}
	if set.TimeDays, err = NewGormTimeDayRepository(db); err != nil {
		return nil, err
	}
	if set.Employees, err = NewGormEmployeeRepository(db); err != nil {
		return nil, err
	}
	if set.Absences, err = NewGormAbsenceRepository(db); err != nil {
		return nil, err
	}
	if set.Summonses, err = NewGormSummonsRepository(db); err != nil {
		return nil, err
	}
	if set.Accidents, err = NewGormAccidentRepository(db); err != nil {
		return nil, err
	}
	if set.Expirations, err = NewGormExpirationRepository(db); err != nil {
		return nil, err
	}

	return set, nil
}
