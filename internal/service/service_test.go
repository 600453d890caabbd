package service

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// newTestDB opens a uniquely named shared in-memory database so each test
// gets isolated storage that survives GORM's connection pooling.
func newTestDB(t *testing.T) (*gorm.DB, *repository.Set) {
	t.Helper()

	n := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	repos, err := repository.NewSet(db)
	require.NoError(t, err)

	return db, repos
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testEmployee(companyCode, employeeCode int) *models.Employee {
	return &models.Employee{
		EmployeeCode:  employeeCode,
		CompanyCode:   companyCode,
		Name:          "MARIA DA SILVA",
		CPF:           "11144477735",
		BirthDate:     day(1990, time.March, 15),
		Sex:           models.SexFemale,
		Registration:  "12345",
		Situation:     models.EmployeeSituationActive,
		AdmissionDate: day(2015, time.February, 1),
		UnitName:      "MATRIZ",
		SectorName:    "PRODUCAO",
		RoleName:      "OPERADOR",
	}
}

func TestLoadRangeIdempotent(t *testing.T) {
	db, repos := newTestDB(t)
	svc := NewTimeDimensionService(repos.TimeDays)

	start := day(2024, time.January, 1)
	end := day(2024, time.January, 31)
	holidaySet := map[string]bool{"2024-01-01": true}

	count, err := svc.LoadRange(db, start, end, holidaySet)
	require.NoError(t, err)
	assert.Equal(t, 31, count)

	// Re-running the same range must not duplicate rows.
	count, err = svc.LoadRange(db, start, end, holidaySet)
	require.NoError(t, err)
	assert.Equal(t, 31, count)

	stored, err := repos.TimeDays.CountInRange(start, end)
	require.NoError(t, err)
	assert.EqualValues(t, 31, stored)

	newYear, err := repos.TimeDays.FindByDate(start)
	require.NoError(t, err)
	require.NotNil(t, newYear)
	assert.True(t, newYear.IsHoliday)
	assert.Equal(t, 1, newYear.Weekday) // 2024-01-01 is a Monday
}

func TestLoadRangeRejectsInvertedRange(t *testing.T) {
	db, repos := newTestDB(t)
	svc := NewTimeDimensionService(repos.TimeDays)

	_, err := svc.LoadRange(db, day(2024, time.February, 1), day(2024, time.January, 1), nil)
	assert.Error(t, err)
}

func TestUpsertEmployeeVersioning(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)

	asOf := day(2024, time.January, 1)

	first, err := resolver.UpsertEmployee(db, testEmployee(1, 100), asOf)
	require.NoError(t, err)

	// Identical attributes: no new version.
	same, err := resolver.UpsertEmployee(db, testEmployee(1, 100), asOf.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, first, same)

	versions, err := repos.Employees.GetVersions(1, 100)
	require.NoError(t, err)
	require.Len(t, versions, 1)

	// Changed tracked attribute: close the old version, open a new one.
	changed := testEmployee(1, 100)
	changed.SectorName = "LOGISTICA"
	rotatedAt := day(2024, time.June, 1)

	second, err := resolver.UpsertEmployee(db, changed, rotatedAt)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	versions, err = repos.Employees.GetVersions(1, 100)
	require.NoError(t, err)
	require.Len(t, versions, 2)

	old, current := versions[0], versions[1]
	assert.False(t, old.Active)
	require.NotNil(t, old.ValidTo)
	assert.True(t, old.ValidTo.Equal(rotatedAt))
	assert.True(t, current.Active)
	assert.Nil(t, current.ValidTo)
	assert.True(t, current.ValidFrom.Equal(rotatedAt))

	active, err := repos.Employees.FindActive(1, 100)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second, active.ID)
}

func TestAbsenceLoadBatch(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewAbsenceService(repos, resolver)

	_, err := NewTimeDimensionService(repos.TimeDays).
		LoadRange(db, day(2024, time.March, 1), day(2024, time.March, 31), nil)
	require.NoError(t, err)
	_, err = resolver.UpsertEmployee(db, testEmployee(1, 100), day(2024, time.January, 1))
	require.NoError(t, err)

	rows := []etl.Row{
		{
			"EMPRESA":            "1",
			"UNIDADE":            "MATRIZ",
			"SETOR":              "PRODUCAO",
			"MATRICULA_FUNC":     "12345",
			"DT_NASCIMENTO":      "1990-03-15",
			"SEXO":               "2",
			"TIPO_ATESTADO":      "1",
			"DT_INICIO_ATESTADO": "2024-03-04",
			"DT_FIM_ATESTADO":    "2024-03-08",
			"CID_PRINCIPAL":      "M54",
			"DESCRICAO_CID":      "DORSALGIA",
		},
		{
			// No employee matches this profile.
			"EMPRESA":            "1",
			"UNIDADE":            "FILIAL",
			"SETOR":              "VENDAS",
			"DT_NASCIMENTO":      "1985-01-01",
			"SEXO":               "1",
			"TIPO_ATESTADO":      "1",
			"DT_INICIO_ATESTADO": "2024-03-04",
		},
		{
			// End before start.
			"EMPRESA":            "1",
			"UNIDADE":            "MATRIZ",
			"SETOR":              "PRODUCAO",
			"DT_NASCIMENTO":      "1990-03-15",
			"SEXO":               "2",
			"TIPO_ATESTADO":      "1",
			"DT_INICIO_ATESTADO": "2024-03-08",
			"DT_FIM_ATESTADO":    "2024-03-04",
		},
	}

	report, err := svc.LoadBatch(db, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Input)
	assert.Equal(t, 1, report.Loaded)
	require.Len(t, report.Errors, 2)
	assert.Equal(t, etl.ErrLookupMiss, report.Errors[0].Kind)
	assert.Equal(t, etl.ErrValidation, report.Errors[1].Kind)

	facts, err := repos.Absences.GetAll()
	require.NoError(t, err)
	require.Len(t, facts, 1)

	fact := facts[0]
	assert.Equal(t, 5.0, fact.DaysAbsent) // Mon-Fri, derived
	assert.Equal(t, models.Bucket4To7, fact.DurationBucket)
	assert.Equal(t, 33, fact.AgeAtStart) // birthday is 11 days after start
	assert.Equal(t, "FEMININO", fact.SexLabel)
	assert.Equal(t, "MEDICO", fact.CertificateTypeLabel)
	assert.Equal(t, "M54", fact.ICDCode)
	assert.NotNil(t, fact.EndDayID)
}

func TestAbsenceTrustsSuppliedDayCount(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewAbsenceService(repos, resolver)

	_, err := NewTimeDimensionService(repos.TimeDays).
		LoadRange(db, day(2024, time.March, 1), day(2024, time.March, 31), nil)
	require.NoError(t, err)
	_, err = resolver.UpsertEmployee(db, testEmployee(1, 100), day(2024, time.January, 1))
	require.NoError(t, err)

	report, err := svc.LoadBatch(db, []etl.Row{{
		"EMPRESA":            "1",
		"UNIDADE":            "MATRIZ",
		"SETOR":              "PRODUCAO",
		"DT_NASCIMENTO":      "1990-03-15",
		"SEXO":               "2",
		"TIPO_ATESTADO":      "1",
		"DT_INICIO_ATESTADO": "2024-03-04",
		"DT_FIM_ATESTADO":    "2024-03-08",
		"DIAS_AFASTADOS":     "2",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	facts, err := repos.Absences.GetAll()
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, 2.0, facts[0].DaysAbsent)
	assert.Equal(t, models.Bucket2To3, facts[0].DurationBucket)
}

func TestSummonsLoadBatchUniqueness(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewSummonsService(repos, resolver)

	_, err := resolver.UpsertEmployee(db, testEmployee(1, 100), day(2024, time.January, 1))
	require.NoError(t, err)
	_, err = resolver.ResolveExamType(db, &models.ExamType{ExamCode: 7, Name: "AUDIOMETRIA", PeriodicityDays: 365})
	require.NoError(t, err)

	pair := etl.Row{
		"CODIGOEMPRESA":     "1",
		"CODIGOFUNCIONARIO": "100",
		"CODIGOEXAME":       "7",
	}

	report, err := svc.LoadBatch(db, []etl.Row{pair, pair})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, etl.ErrDuplicate, report.Errors[0].Kind)

	// A second batch must also collide with the stored pair.
	report, err = svc.LoadBatch(db, []etl.Row{pair})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, etl.ErrDuplicate, report.Errors[0].Kind)

	facts, err := repos.Summonses.GetAll()
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, models.ConvocationFirstExam, facts[0].ConvocationKind)
	assert.Equal(t, "AUDIOMETRIA", facts[0].ExamName)
	assert.Equal(t, 365, facts[0].PeriodicityDays)
	assert.Equal(t, "MARIA DA SILVA", facts[0].EmployeeName)
}

func TestSummonsConvocationKinds(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewSummonsService(repos, resolver)

	_, err := resolver.UpsertEmployee(db, testEmployee(1, 100), day(2024, time.January, 1))
	require.NoError(t, err)
	for code := 1; code <= 2; code++ {
		_, err = resolver.ResolveExamType(db, &models.ExamType{ExamCode: code, Name: fmt.Sprintf("EXAME %d", code)})
		require.NoError(t, err)
	}

	report, err := svc.LoadBatch(db, []etl.Row{
		{
			"CODIGOEMPRESA":     "1",
			"CODIGOFUNCIONARIO": "100",
			"CODIGOEXAME":       "1",
			"DATAULTIMOPEDIDO":  "2023-11-10",
		},
		{
			"CODIGOEMPRESA":     "1",
			"CODIGOFUNCIONARIO": "100",
			"CODIGOEXAME":       "2",
			"DATAULTIMOPEDIDO":  "2023-11-10",
			"REFAZER":           "1",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Loaded)

	facts, err := repos.Summonses.GetAll()
	require.NoError(t, err)
	require.Len(t, facts, 2)

	kinds := map[int]string{}
	for _, fact := range facts {
		kinds[fact.ExamCode] = fact.ConvocationKind
	}
	assert.Equal(t, models.ConvocationPeriodic, kinds[1])
	assert.Equal(t, models.ConvocationRedo, kinds[2]) // redo wins over the prior request
}

func TestAccidentLoadBatch(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewAccidentService(repos, resolver)

	_, err := NewTimeDimensionService(repos.TimeDays).
		LoadRange(db, day(2024, time.May, 1), day(2024, time.May, 31), nil)
	require.NoError(t, err)
	_, err = resolver.UpsertEmployee(db, testEmployee(1, 100), day(2024, time.January, 1))
	require.NoError(t, err)

	cat := etl.Row{
		"CODIGOEMPRESA":     "1",
		"CODIGOFUNCIONARIO": "100",
		"NUMEROCAT":         "CAT-2024-001",
		"DATAACIDENTE":      "2024-05-10",
		"HORAACIDENTE":      "14:30",
		"PARTEATINGIDA":     "MAO DIREITA",
		"AFASTAMENTO":       "1",
		"DIASPERDIDOS":      "12",
	}

	report, err := svc.LoadBatch(db, []etl.Row{cat, cat})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, etl.ErrDuplicate, report.Errors[0].Kind)

	facts, err := repos.Accidents.GetAll()
	require.NoError(t, err)
	require.Len(t, facts, 1)

	fact := facts[0]
	assert.Equal(t, "CAT-2024-001", fact.ReportNumber)
	assert.Equal(t, "14:30", fact.AccidentTime)
	assert.Equal(t, 34, fact.AgeAtEvent)
	assert.Equal(t, 12, fact.DaysLost)
	assert.True(t, fact.Leave)
}

func TestAccidentUnknownEmployee(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewAccidentService(repos, resolver)

	report, err := svc.LoadBatch(db, []etl.Row{{
		"CODIGOEMPRESA":     "1",
		"CODIGOFUNCIONARIO": "999",
		"NUMEROCAT":         "CAT-2024-002",
		"DATAACIDENTE":      "2024-05-10",
	}})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, etl.ErrLookupMiss, report.Errors[0].Kind)
}

func TestExpirationLoadBatch(t *testing.T) {
	db, repos := newTestDB(t)
	resolver := NewDimensionResolver(repos)
	svc := NewExpirationService(repos, resolver)
	svc.Now = func() time.Time { return day(2024, time.June, 1) }

	_, err := resolver.ResolveCompany(db, &models.Company{CompanyCode: 1, Name: "ACME LTDA"})
	require.NoError(t, err)

	report, err := svc.LoadBatch(db, []etl.Row{
		{
			"codigoEmpresa":  "1",
			"codigoProduto":  "PGR",
			"nomeProduto":    "PGR - PROGRAMA DE GERENCIAMENTO DE RISCOS",
			"dataVencimento": "2024-05-01",
		},
		{
			"codigoEmpresa":  "1",
			"codigoProduto":  "PCMSO",
			"nomeProduto":    "PCMSO",
			"dataVencimento": "2024-06-10",
		},
		{
			"codigoEmpresa": "1",
			"codigoProduto": "LTCAT",
			"nomeProduto":   "LTCAT",
		},
		{
			"codigoEmpresa":  "99",
			"codigoProduto":  "PGR",
			"nomeProduto":    "PGR",
			"dataVencimento": "2024-07-01",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Loaded)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, etl.ErrLookupMiss, report.Errors[0].Kind)

	byProduct := map[string]models.DocumentExpiration{}
	facts, err := repos.Expirations.GetAll()
	require.NoError(t, err)
	for _, fact := range facts {
		byProduct[fact.ProductCode] = fact
	}

	expired := byProduct["PGR"]
	assert.Equal(t, models.StatusExpired, expired.Status)
	assert.True(t, expired.Expired)
	require.NotNil(t, expired.DaysToExpiry)
	assert.Equal(t, -31, *expired.DaysToExpiry)

	critical := byProduct["PCMSO"]
	assert.Equal(t, models.StatusCritical, critical.Status)
	assert.True(t, critical.Critical)
	require.NotNil(t, critical.DaysToExpiry)
	assert.Equal(t, 9, *critical.DaysToExpiry)

	noDate := byProduct["LTCAT"]
	assert.Equal(t, models.StatusNoDate, noDate.Status)
	assert.Nil(t, noDate.DaysToExpiry)
	assert.False(t, noDate.Expired)
	assert.Equal(t, "ACME LTDA", noDate.CompanyName)
}

func TestOrchestratorRun(t *testing.T) {
	db, repos := newTestDB(t)
	orchestrator := NewOrchestrator(db, repos)
	orchestrator.Now = func() time.Time { return day(2024, time.June, 1) }
	orchestrator.expirations.Now = orchestrator.Now

	batches := Batches{
		TimeStart: day(2024, time.January, 1),
		TimeEnd:   day(2024, time.December, 31),
		Holidays:  map[string]bool{"2024-01-01": true},

		Companies: []etl.Row{{
			"CODIGOEMPRESA": "1",
			"NOMEEMPRESA":   "ACME LTDA",
		}},
		Units: []etl.Row{{
			"CODIGOEMPRESA": "1",
			"CODIGOUNIDADE": "U1",
			"NOMEUNIDADE":   "MATRIZ",
		}},
		Sectors: []etl.Row{{
			"CODIGOEMPRESA": "1",
			"CODIGOSETOR":   "S1",
			"NOMESETOR":     "PRODUCAO",
		}},
		Roles: []etl.Row{{
			"CODIGOCARGO": "C1",
			"NOMECARGO":   "OPERADOR",
		}},
		ExamTypes: []etl.Row{{
			"CODIGOEXAME": "7",
			"NOMEEXAME":   "AUDIOMETRIA",
		}},
		Employees: []etl.Row{{
			"CODIGO":               "100",
			"CODIGOEMPRESA":        "1",
			"NOME":                 "MARIA DA SILVA",
			"CPF":                  "11144477735",
			"DATA_NASCIMENTO":      "1990-03-15",
			"SEXO":                 "2",
			"MATRICULAFUNCIONARIO": "12345",
			"SITUACAO":             "ATIVO",
			"DATA_ADMISSAO":        "2015-02-01",
			"NOMEUNIDADE":          "MATRIZ",
			"NOMESETOR":            "PRODUCAO",
		}},

		Absences: []etl.Row{{
			"EMPRESA":            "1",
			"UNIDADE":            "MATRIZ",
			"SETOR":              "PRODUCAO",
			"DT_NASCIMENTO":      "1990-03-15",
			"SEXO":               "2",
			"TIPO_ATESTADO":      "1",
			"DT_INICIO_ATESTADO": "2024-03-04",
			"DT_FIM_ATESTADO":    "2024-03-08",
		}},
		Summonses: []etl.Row{{
			"CODIGOEMPRESA":     "1",
			"CODIGOFUNCIONARIO": "100",
			"CODIGOEXAME":       "7",
		}},
		Accidents: []etl.Row{{
			"CODIGOEMPRESA":     "1",
			"CODIGOFUNCIONARIO": "100",
			"NUMEROCAT":         "CAT-2024-001",
			"DATAACIDENTE":      "2024-05-10",
		}},
		Expirations: []etl.Row{{
			"codigoEmpresa":  "1",
			"codigoProduto":  "PGR",
			"nomeProduto":    "PGR",
			"dataVencimento": "2024-06-10",
		}},
	}

	summary, err := orchestrator.Run(batches)
	require.NoError(t, err)

	for _, entity := range []string{
		"companies", "units", "sectors", "roles", "exam_types", "employees",
		"absences", "summonses", "accidents", "expirations",
	} {
		report, ok := summary.Entities[entity]
		require.True(t, ok, "missing report for %s", entity)
		assert.Equal(t, 1, report.Loaded, "entity %s", entity)
		assert.Empty(t, report.Errors, "entity %s", entity)
	}
	assert.Equal(t, 0, summary.TotalErrors())

	days, err := repos.TimeDays.CountInRange(batches.TimeStart, batches.TimeEnd)
	require.NoError(t, err)
	assert.EqualValues(t, 366, days) // 2024 is a leap year

	active, err := repos.Employees.FindActive(1, 100)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, active.ValidFrom.Equal(day(2024, time.June, 1)))

	// A second run is a full refresh: same state, no fact duplicates.
	summary, err = orchestrator.Run(batches)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalErrors())

	absences, err := repos.Absences.GetAll()
	require.NoError(t, err)
	assert.Len(t, absences, 1)
	summonses, err := repos.Summonses.GetAll()
	require.NoError(t, err)
	assert.Len(t, summonses, 1)
}
