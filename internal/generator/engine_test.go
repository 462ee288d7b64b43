package generator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster-service/internal/domain"
	"roster-service/internal/generator"
)

var (
	scheduleStart = time.Date(2026, 9, 6, 9, 0, 0, 0, time.UTC)
	scheduleEnd   = time.Date(2026, 9, 6, 12, 0, 0, 0, time.UTC)
)

func makeUsers(ids ...string) []*domain.User {
	users := make([]*domain.User, len(ids))
	for i, id := range ids {
		users[i] = &domain.User{ID: id, DisplayName: "User " + id, Status: domain.UserActive}
	}
	return users
}

func makeInput(quotas []domain.Quota, pools map[domain.Qualification][]*domain.User) generator.Input {
	return generator.Input{
		ScheduleID: "sched-1",
		StartsAt:   scheduleStart,
		EndsAt:     scheduleEnd,
		ShiftSlot:  "morning",
		Quotas:     quotas,
		Pools:      pools,
		Blocked:    map[string]bool{},
		Histories:  map[string]*domain.UserHistory{},
	}
}

func TestEngine_Generate_BlockedUserSkipped(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 4, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-5", Count: 2}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-5"}: makeUsers("U1", "U2", "U3"),
		},
	)
	input.Blocked["U1"] = true

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 2)
	assert.Equal(t, "U2", result.Assignments[0].UserID)
	assert.Equal(t, "U3", result.Assignments[1].UserID)
	assert.Empty(t, result.Deficiencies)
}

func TestEngine_Generate_DeficiencyReported(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 4, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-5", Count: 3}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-5"}: makeUsers("U1", "U2"),
		},
	)
	input.Blocked["U1"] = true

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "U2", result.Assignments[0].UserID)
	require.Len(t, result.Deficiencies, 1)
	assert.Equal(t, domain.Deficiency{
		AreaID:    "area-1",
		RoleID:    "role-5",
		Requested: 3,
		Fulfilled: 1,
	}, result.Deficiencies[0])
}

func TestEngine_Generate_Deterministic(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 4, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{
			{AreaID: "area-1", RoleID: "role-1", Count: 2},
			{AreaID: "area-1", RoleID: "role-2", Count: 1},
		},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U3", "U1", "U2"),
			{AreaID: "area-1", RoleID: "role-2"}: makeUsers("U2", "U4"),
		},
	)

	first := engine.Generate(input)
	second := engine.Generate(input)

	require.Equal(t, len(first.Assignments), len(second.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].UserID, second.Assignments[i].UserID)
		assert.Equal(t, first.Assignments[i].RoleID, second.Assignments[i].RoleID)
		assert.Equal(t, first.Assignments[i].Position, second.Assignments[i].Position)
	}
	assert.Equal(t, first.Deficiencies, second.Deficiencies)
}

func TestEngine_Generate_MonthlyCapSkipsCandidate(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 2, MinDaysBetweenAssignments: 0})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-1", Count: 1}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U1", "U2"),
		},
	)
	// U1 уже дважды служил в пределах скользящего месяца.
	input.Histories["U1"] = &domain.UserHistory{
		UserID: "U1",
		AssignmentStarts: []time.Time{
			scheduleStart.AddDate(0, 0, -20),
			scheduleStart.AddDate(0, 0, -10),
		},
		LastAssignmentEnd: scheduleStart.AddDate(0, 0, -10),
	}

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "U2", result.Assignments[0].UserID)
	assert.Empty(t, result.Deficiencies)
}

func TestEngine_Generate_MinGapSkipsCandidate(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 10, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-1", Count: 1}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U1", "U2"),
		},
	)
	// U1 служил три дня назад — интервал меньше минимального.
	input.Histories["U1"] = &domain.UserHistory{
		UserID:            "U1",
		AssignmentStarts:  []time.Time{scheduleStart.AddDate(0, 0, -3)},
		LastAssignmentEnd: scheduleStart.AddDate(0, 0, -3),
	}

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "U2", result.Assignments[0].UserID)
}

func TestEngine_Generate_MinGapAppliesToFutureAssignments(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 10, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-1", Count: 1}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U1", "U2"),
		},
	)
	// У U1 уже есть назначение через два дня после даты расписания.
	input.Histories["U1"] = &domain.UserHistory{
		UserID:            "U1",
		AssignmentStarts:  []time.Time{scheduleStart.AddDate(0, 0, 2)},
		LastAssignmentEnd: scheduleStart.AddDate(0, 0, 2),
	}

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "U2", result.Assignments[0].UserID)
}

func TestEngine_Generate_RanksByLoadThenRecencyThenID(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 10, MinDaysBetweenAssignments: 0})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-1", Count: 3}},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U1", "U2", "U3", "U4"),
		},
	)
	// U1: одна смена в месяце, недавняя. U2: одна смена, давняя.
	// U3 и U4 не служили — идут первыми, между собой по идентификатору.
	input.Histories["U1"] = &domain.UserHistory{
		UserID:            "U1",
		AssignmentStarts:  []time.Time{scheduleStart.AddDate(0, 0, -8)},
		LastAssignmentEnd: scheduleStart.AddDate(0, 0, -8),
	}
	input.Histories["U2"] = &domain.UserHistory{
		UserID:            "U2",
		AssignmentStarts:  []time.Time{scheduleStart.AddDate(0, 0, -25)},
		LastAssignmentEnd: scheduleStart.AddDate(0, 0, -25),
	}

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 3)
	assert.Equal(t, "U3", result.Assignments[0].UserID)
	assert.Equal(t, "U4", result.Assignments[1].UserID)
	assert.Equal(t, "U2", result.Assignments[2].UserID)
}

func TestEngine_Generate_UserAssignedOncePerRun(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 10, MinDaysBetweenAssignments: 0})

	pool := makeUsers("U1")
	input := makeInput(
		[]domain.Quota{
			{AreaID: "area-1", RoleID: "role-1", Count: 1},
			{AreaID: "area-1", RoleID: "role-2", Count: 1},
		},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-1", RoleID: "role-1"}: pool,
			{AreaID: "area-1", RoleID: "role-2"}: pool,
		},
	)

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "role-1", result.Assignments[0].RoleID)
	require.Len(t, result.Deficiencies, 1)
	assert.Equal(t, "role-2", result.Deficiencies[0].RoleID)
}

func TestEngine_Generate_OutputFollowsQuotaOrder(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 10, MinDaysBetweenAssignments: 0})

	input := makeInput(
		[]domain.Quota{
			{AreaID: "area-2", RoleID: "role-9", Count: 1},
			{AreaID: "area-1", RoleID: "role-1", Count: 2},
		},
		map[domain.Qualification][]*domain.User{
			{AreaID: "area-2", RoleID: "role-9"}: makeUsers("U5"),
			{AreaID: "area-1", RoleID: "role-1"}: makeUsers("U1", "U2"),
		},
	)

	result := engine.Generate(input)

	require.Len(t, result.Assignments, 3)
	assert.Equal(t, "role-9", result.Assignments[0].RoleID)
	assert.Equal(t, "role-1", result.Assignments[1].RoleID)
	assert.Equal(t, "role-1", result.Assignments[2].RoleID)
	for i, assignment := range result.Assignments {
		assert.Equal(t, i, assignment.Position)
		assert.Equal(t, domain.AssignmentPending, assignment.Status)
		assert.Equal(t, "sched-1", assignment.ScheduleID)
	}
}

func TestEngine_Generate_EmptyPool(t *testing.T) {
	engine := generator.NewEngine(generator.Config{MaxAssignmentsPerMonth: 4, MinDaysBetweenAssignments: 7})

	input := makeInput(
		[]domain.Quota{{AreaID: "area-1", RoleID: "role-1", Count: 2}},
		map[domain.Qualification][]*domain.User{},
	)

	result := engine.Generate(input)

	assert.Empty(t, result.Assignments)
	require.Len(t, result.Deficiencies, 1)
	assert.Equal(t, 0, result.Deficiencies[0].Fulfilled)
}
