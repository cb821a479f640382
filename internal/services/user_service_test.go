package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/cache"
	"github.com/Anilrajput6441/Gema-Assignment/internal/events"
	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, svc UserService, name, email string) *CreateUserResult {
	t.Helper()
	res, _, err := svc.CreateUser(context.Background(), &CreateUserRequest{StudentName: name, Email: email})
	require.NoError(t, err)
	return res
}

func ieltsExam(overall float64) ExamInput {
	return ExamInput{
		ExamType:     "ielts",
		OverallScore: f64(overall),
		Skills:       skillsInput(7, 7, 7, 7),
	}
}

func TestUserService_CreateUser(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()

	t.Run("new user", func(t *testing.T) {
		res, created, err := env.users.CreateUser(ctx, &CreateUserRequest{
			StudentName: "  Ana Lima ",
			Email:       "Ana@Example.com",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Regexp(t, `^user_[0-9a-f-]{36}$`, res.UserID)
		assert.Equal(t, "Ana Lima", res.StudentName)
		assert.Equal(t, "ana@example.com", res.Email)
		assert.Equal(t, newUserHint, res.Message)

		published := env.publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventUserCreated, published[0].Type)
	})

	t.Run("same email returns the original user", func(t *testing.T) {
		first, _, err := env.users.CreateUser(ctx, &CreateUserRequest{StudentName: "Bo", Email: "bo@example.com"})
		require.NoError(t, err)

		second, created, err := env.users.CreateUser(ctx, &CreateUserRequest{StudentName: "Robert", Email: "BO@example.com"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.UserID, second.UserID)
		assert.Equal(t, "Bo", second.StudentName)
		assert.Empty(t, second.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, _, err := env.users.CreateUser(ctx, &CreateUserRequest{StudentName: "", Email: ""})
		require.Error(t, err)
		assert.True(t, IsValidation(err))

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		fields := []string{}
		for _, v := range verrs {
			fields = append(fields, v.Field)
		}
		assert.Contains(t, fields, "studentName")
		assert.Contains(t, fields, "email")
	})

	t.Run("email is not format checked", func(t *testing.T) {
		res, created, err := env.users.CreateUser(ctx, &CreateUserRequest{StudentName: "X", Email: "Student-7"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "student-7", res.Email)
	})
}

func TestUserService_SubmitExamsReplaces(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()
	user := createUser(t, env.users, "Ana", "ana@example.com")

	res, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7)}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalExams)
	assert.Equal(t, "Ana", res.StudentName)

	second := ExamInput{ExamType: "pte", OverallScore: f64(70), Skills: skillsInput(60, 65, 70, 75)}
	res, err = env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{second}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalExams)

	got, err := env.users.GetUser(ctx, user.UserID)
	require.NoError(t, err)
	require.Len(t, got.Exams, 1)
	assert.Equal(t, scoring.ExamPTE, got.Exams[0].ExamType)
	assert.Equal(t, 75.0, got.Exams[0].Skills.Grammar)
	assert.Regexp(t, `^exam_`, got.Exams[0].ID)

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 3)
	assert.Equal(t, events.EventExamsSubmitted, published[2].Type)
	data, ok := published[2].Data.(events.ExamsSubmittedEvent)
	require.True(t, ok)
	assert.Equal(t, []string{"pte"}, data.ExamTypes)
}

func TestUserService_SubmitExamsInputs(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		_, err := env.users.SubmitExams(ctx, "user_missing", &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7)}})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("missing exams array", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{})
		assert.True(t, IsValidation(err))
	})

	t.Run("empty array clears exams", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7)}})
		require.NoError(t, err)

		res, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{}})
		require.NoError(t, err)
		assert.Equal(t, 0, res.TotalExams)
	})

	t.Run("legacy scores array and supplied ids", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")
		created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		tested := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{{
			LegacyID:     "exam_legacy",
			ExamType:     "TOEFL",
			OverallScore: f64(100),
			Scores:       []float64{25, 26, 27, 28},
			TestDate:     &Date{Time: tested},
			CreatedAt:    &Date{Time: created},
		}}})
		require.NoError(t, err)

		got, err := env.users.GetUser(ctx, user.UserID)
		require.NoError(t, err)
		require.Len(t, got.Exams, 1)
		exam := got.Exams[0]
		assert.Equal(t, "exam_legacy", exam.ID)
		assert.Equal(t, scoring.ExamTOEFL, exam.ExamType)
		assert.Equal(t, scoring.SkillScores{Pronunciation: 25, Fluency: 26, Vocabulary: 27, Grammar: 28}, exam.Skills)
		assert.True(t, exam.CreatedAt.Equal(created))
		assert.True(t, exam.TestDate.Equal(tested))
		assert.True(t, exam.UpdatedAt.After(created))
	})

	t.Run("whole batch rejected on one bad exam", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")

		bad := ExamInput{ExamType: "ielts", OverallScore: f64(7)}
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7), bad}})
		require.Error(t, err)

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "exams[1].skills", verrs[0].Field)

		got, err := env.users.GetUser(ctx, user.UserID)
		require.NoError(t, err)
		assert.Empty(t, got.Exams)
	})

	t.Run("invalid exam type", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")

		exam := ieltsExam(7)
		exam.ExamType = "gre"
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{exam}})

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "exams[0].examType", verrs[0].Field)
	})

	t.Run("negative score", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")

		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(-1)}})
		assert.True(t, IsValidation(err))
	})

	t.Run("duplicate ids in one batch", func(t *testing.T) {
		env := newTestEnv(t, Options{}, nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")

		a, b := ieltsExam(7), ieltsExam(8)
		a.ID, b.ID = "exam_same", "exam_same"
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{a, b}})

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "exams[1].id", verrs[0].Field)
	})
}

func TestUserService_StrictScoreRange(t *testing.T) {
	ctx := context.Background()
	outOfRange := ieltsExam(9.5)

	lenient := newTestEnv(t, Options{}, nil)
	user := createUser(t, lenient.users, "Ana", "ana@example.com")
	_, err := lenient.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{outOfRange}})
	assert.NoError(t, err)

	strict := newTestEnv(t, Options{StrictScoreRange: true}, nil)
	user = createUser(t, strict.users, "Ana", "ana@example.com")
	_, err = strict.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{outOfRange}})

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "exams[0].overallScore", verrs[0].Field)
	assert.Equal(t, "must be between 0 and 9", verrs[0].Message)
}

func TestUserService_PublishFailureDoesNotFailRequest(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	env.users.publisher = failingPublisher{}

	res, created, err := env.users.CreateUser(context.Background(), &CreateUserRequest{StudentName: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, res.UserID)
}

func TestUserService_ListAndFilter(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()

	users, err := env.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	user := createUser(t, env.users, "Ana", "ana@example.com")
	createUser(t, env.users, "Bo", "bo@example.com")

	pte := ExamInput{ExamType: "pte", OverallScore: f64(70), Skills: skillsInput(70, 70, 70, 70)}
	_, err = env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7), pte, ieltsExam(8)}})
	require.NoError(t, err)

	users, err = env.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].StudentName)

	filtered, err := env.users.GetUserExamsByType(ctx, user.UserID, "IELTS")
	require.NoError(t, err)
	assert.Len(t, filtered.Exams, 2)
	assert.Equal(t, user.UserID, filtered.UserID)

	_, err = env.users.GetUserExamsByType(ctx, user.UserID, "gre")
	assert.ErrorIs(t, err, scoring.ErrUnknownExamType)

	_, err = env.users.GetUserExamsByType(ctx, "user_missing", "ielts")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetUserReport(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()
	user := createUser(t, env.users, "Ana", "ana@example.com")

	ielts := ExamInput{ExamType: "ielts", OverallScore: f64(7.5), Skills: skillsInput(8, 7, 6, 3)}
	pte := ExamInput{ExamType: "pte", OverallScore: f64(45), Skills: skillsInput(45, 45, 45, 45)}
	_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ielts, pte}})
	require.NoError(t, err)

	report, err := env.users.GetUserReport(ctx, user.UserID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)

	first := report.Reports[0]
	assert.Equal(t, scoring.ExamIELTS, first.Exam.Type)
	assert.InDelta(t, 83.33, first.OverallPercentage, 0.01)
	assert.Equal(t, scoring.CardExcellent, first.ScoreCard)
	assert.Equal(t, 75.0, first.Conversions[scoring.ExamPTE])
	assert.Equal(t, scoring.TierExcellent.Message(), first.Skills[0].Feedback)
	assert.Equal(t, scoring.TierNeedsImprovement.Message(), first.Feedback.Grammar)

	onlyPTE, err := env.users.GetUserReport(ctx, user.UserID, "pte")
	require.NoError(t, err)
	require.Equal(t, 1, onlyPTE.Count)
	assert.Equal(t, scoring.CardKeepPracticing, onlyPTE.Reports[0].ScoreCard)

	_, err = env.users.GetUserReport(ctx, user.UserID, "gre")
	assert.ErrorIs(t, err, scoring.ErrUnknownExamType)
}

func TestUserService_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("hit skips the repository", func(t *testing.T) {
		mc := new(MockCache)
		env := newTestEnv(t, Options{CacheTTL: time.Minute}, mc)

		mc.On("Get", ctx, "user:user_cached", mock.Anything).
			Run(func(args mock.Arguments) {
				dest := args.Get(2).(*models.User)
				dest.UserID = "user_cached"
				dest.StudentName = "From Cache"
			}).
			Return(nil)

		user, err := env.users.GetUser(ctx, "user_cached")
		require.NoError(t, err)
		assert.Equal(t, "From Cache", user.StudentName)
		mc.AssertExpectations(t)
	})

	t.Run("miss populates and writes invalidate", func(t *testing.T) {
		mc := new(MockCache)
		env := newTestEnv(t, Options{CacheTTL: time.Minute}, mc)

		mc.On("Delete", mock.Anything, mock.Anything).Return(nil)
		user := createUser(t, env.users, "Ana", "ana@example.com")
		mc.AssertCalled(t, "Delete", mock.Anything, cacheKeyUsers)

		mc.On("Get", mock.Anything, "user:"+user.UserID, mock.Anything).Return(errors.New("cache miss")).Once()
		mc.On("Set", mock.Anything, "user:"+user.UserID, mock.Anything, time.Minute).Return(nil).Once()

		got, err := env.users.GetUser(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Ana", got.StudentName)

		mc.On("DeletePattern", mock.Anything, "user:"+user.UserID+":*").Return(nil).Once()
		_, err = env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7)}})
		require.NoError(t, err)
		mc.AssertCalled(t, "Delete", mock.Anything, "user:"+user.UserID)
		mc.AssertExpectations(t)
	})

	t.Run("report is cached under the user key", func(t *testing.T) {
		mc := new(MockCache)
		env := newTestEnv(t, Options{CacheTTL: time.Minute}, mc)

		mc.On("Delete", mock.Anything, mock.Anything).Return(nil)
		mc.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)
		mc.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(cache.ErrCacheMiss)
		mc.On("Set", mock.Anything, mock.Anything, mock.Anything, time.Minute).Return(nil)

		user := createUser(t, env.users, "Ana", "ana@example.com")
		_, err := env.users.SubmitExams(ctx, user.UserID, &SubmitExamsRequest{Exams: []ExamInput{ieltsExam(7)}})
		require.NoError(t, err)
		mc.AssertCalled(t, "DeletePattern", mock.Anything, "user:"+user.UserID+":*")

		report, err := env.users.GetUserReport(ctx, user.UserID, "IELTS")
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count)
		mc.AssertCalled(t, "Set", mock.Anything, "user:"+user.UserID+":report:ielts", report, time.Minute)

		_, err = env.users.GetUserReport(ctx, user.UserID, "")
		require.NoError(t, err)
		mc.AssertCalled(t, "Get", mock.Anything, "user:"+user.UserID+":report:all", mock.Anything)
	})
}

func TestUserService_ConcurrentCreateSameEmail(t *testing.T) {
	env := newTestEnv(t, Options{}, nil)
	ctx := context.Background()

	const n = 10
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			res, _, err := env.users.CreateUser(ctx, &CreateUserRequest{StudentName: "Ana", Email: "ana@example.com"})
			if err != nil {
				ids <- "error: " + err.Error()
				return
			}
			ids <- res.UserID
		}()
	}

	first := <-ids
	for i := 1; i < n; i++ {
		assert.Equal(t, first, <-ids)
	}

	users, err := env.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestValidator_ExamTypeIsCaseInsensitive(t *testing.T) {
	v := validator.New()
	err := v.Validate(&ExamInput{ExamType: "Ielts", OverallScore: f64(1)})
	assert.NoError(t, err)
}
