package constants

// Enum mata pelajaran (subject) — selaras dengan enum `subject` di database
const (
	SubjectBiology   = "BIOLOGY"
	SubjectChemistry = "CHEMISTRY"
	SubjectPhysics   = "PHYSICS"
)

var AllSubjects = []string{
	SubjectBiology,
	SubjectChemistry,
	SubjectPhysics,
}

// Enum tipe soal
const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionEssay          = "ESSAY"
	QuestionCalculation    = "CALCULATION"
	QuestionDiagram        = "DIAGRAM"
	QuestionEquation       = "EQUATION"
	QuestionTrueFalse      = "TRUE_FALSE"
)

var AllQuestionTypes = []string{
	QuestionMultipleChoice,
	QuestionEssay,
	QuestionCalculation,
	QuestionDiagram,
	QuestionEquation,
	QuestionTrueFalse,
}

// Enum tingkat kesulitan
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

var AllDifficulties = []string{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

// Status pengerjaan tugas per siswa
const (
	ProgressNotStarted = "NOT_STARTED"
	ProgressInProgress = "IN_PROGRESS"
	ProgressSubmitted  = "SUBMITTED"
	ProgressGraded     = "GRADED"
)

var AllProgressStatuses = []string{
	ProgressNotStarted,
	ProgressInProgress,
	ProgressSubmitted,
	ProgressGraded,
}

// Tipe notifikasi
const (
	NotifInfo       = "INFO"
	NotifSuccess    = "SUCCESS"
	NotifWarning    = "WARNING"
	NotifError      = "ERROR"
	NotifAssignment = "ASSIGNMENT"
	NotifGrade      = "GRADE"
)

var AllNotificationTypes = []string{
	NotifInfo,
	NotifSuccess,
	NotifWarning,
	NotifError,
	NotifAssignment,
	NotifGrade,
}

func inList(v string, list []string) bool {
	for _, it := range list {
		if it == v {
			return true
		}
	}
	return false
}

func ValidSubject(s string) bool        { return inList(s, AllSubjects) }
func ValidQuestionType(t string) bool   { return inList(t, AllQuestionTypes) }
func ValidDifficulty(d string) bool     { return inList(d, AllDifficulties) }
func ValidProgressStatus(s string) bool { return inList(s, AllProgressStatuses) }
