package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// maxYearsPerJob caps one job-title date range; longer spans are parsing artifacts
	maxYearsPerJob = 8
	// maxExplicitYears drops "N years" mentions that cannot be a career length
	maxExplicitYears = 50
)

var (
	dateRange          = regexp.MustCompile(`(20\d{2})\s*[-–]\s*(20\d{2})`)
	educationDateRange = regexp.MustCompile(`(?i)(bachelor|master|mca|bca|degree).*?(20\d{2})\s*[-–]\s*(20\d{2})`)
	explicitYears      = regexp.MustCompile(`(?i)(\d+)\s*\+?\s*years?.*?(experience|work)`)
	jobDateRange       = regexp.MustCompile(`(?i)\b(software engineer|software developer|web developer|java developer|python developer|full stack developer|backend developer|frontend developer|analyst|consultant|engineer)\b.*?(20\d{2})\s*[-–]\s*(20\d{2}|present|current)`)
	degreeLine         = regexp.MustCompile(`(?i)\b(b\.?tech|m\.?tech|bachelor|masters?\s+of|degree|university|college|mca|bca|mba)\b|\bb\.e\.`)
)

var studentPhrases = []string{
	"fresher", "recent graduate", "seeking first job", "no experience", "entry level",
	"pursuing", "student", "final year", "expected graduation", "graduation expected",
	"currently studying",
}

var (
	strongWorkPhrases = []string{
		"work experience", "professional experience", "employment history", "employed at",
		"worked at", "working at", "full-time", "part-time", "permanent", "contract",
	}
	jobTitles = []string{
		"software engineer", "software developer", "web developer", "full stack developer",
		"backend developer", "frontend developer", "java developer", "python developer",
	}
	companyContext = []string{
		" at ", "company", "technologies", "solutions", "systems", "inc", "ltd", "corp",
	}
	salaryPhrases         = []string{"salary", "ctc", "compensation", "paid"}
	responsibilityPhrases = []string{"responsibilities", "managed", "led team", "reporting to", "supervised"}
)

var (
	seniorTitles = []string{
		"senior", "lead", "principal", "architect", "manager", "director", "head", "chief", "vp", "vice president",
	}
	leadershipRoles = []string{
		"lead", "manager", "director", "supervisor", "coordinator", "head", "chief", "team lead",
		"project manager", "scrum master", "product manager", "tech lead", "engineering manager",
	}
	seniorResponsibilities = []string{
		"mentoring", "mentored", "leading", "managing", "architecture", "strategic", "roadmap",
		"stakeholder", "cross-functional", "team building", "hiring", "performance review",
		"budget", "planning", "strategy", "vision", "scaling", "optimization",
	}
	positionIndicators = []string{
		"software engineer", "developer", "analyst", "manager", "consultant",
		"associate", "specialist", "coordinator", "administrator", "architect",
	}
)

// containsAny reports whether s contains any of the phrases
func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// detectStudent reports whether lowercase résumé text describes someone still studying
// or without employment: student/fresher vocabulary, an MCA or bachelor mention with no
// work vocabulary, or a date range that ends after currentYear.
func detectStudent(lower string, currentYear int) bool {
	if containsAny(lower, studentPhrases) {
		return true
	}
	noWorkWords := !strings.Contains(lower, "work") && !strings.Contains(lower, "employ")
	if noWorkWords && (strings.Contains(lower, "mca") || strings.Contains(lower, "bachelor")) {
		return true
	}
	for _, m := range dateRange.FindAllStringSubmatch(lower, -1) {
		end, err := strconv.Atoi(m[2])
		if err == nil && end > currentYear {
			return true
		}
	}
	return false
}

// detectWorkExperience requires a clear employment signal; project work alone does not count
func detectWorkExperience(lower string) bool {
	if containsAny(lower, strongWorkPhrases) {
		return true
	}
	if containsAny(lower, jobTitles) && containsAny(lower, companyContext) {
		return true
	}
	return containsAny(lower, salaryPhrases) || containsAny(lower, responsibilityPhrases)
}

func detectInternshipOnly(lower string) bool {
	return strings.Contains(lower, "intern") &&
		!strings.Contains(lower, "full-time") &&
		!strings.Contains(lower, "permanent") &&
		!strings.Contains(lower, "employee")
}

// isEnrolled is the narrower student check used for level classification
func isEnrolled(lower string) bool {
	return containsAny(lower, []string{"student", "pursuing", "currently studying", "expected graduation", "final year"})
}

func detectProfessionalProjects(lower string) bool {
	return strings.Contains(lower, "project") &&
		containsAny(lower, []string{"developed", "built", "created", "implemented"})
}

func countJobPositions(lower string) int {
	count := 0
	for _, p := range positionIndicators {
		if strings.Contains(lower, p) {
			count++
		}
	}
	return count
}

// estimateYears is deliberately conservative. Students and education-only résumés get
// 0; otherwise the largest explicit "N years ... experience" wins, and job-title date
// ranges are summed only when no explicit figure exists and employment is evident.
func estimateYears(text string, currentYear int) int {
	lower := strings.ToLower(text)

	if detectStudent(lower, currentYear) {
		return 0
	}

	hasWork := detectWorkExperience(lower)
	if educationDateRange.MatchString(text) && !hasWork {
		return 0
	}

	years := 0
	for _, m := range explicitYears.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxExplicitYears {
			continue
		}
		years = max(years, n)
	}

	if years == 0 && hasWork {
		years = estimateYearsFromDates(text, currentYear)
	}
	return years
}

// estimateYearsFromDates sums job-title date ranges such as
// "Software Engineer, Acme 2019 - 2022", each capped at maxYearsPerJob. Lines that
// name a degree or institution are education and never count.
func estimateYearsFromDates(text string, currentYear int) int {
	lower := strings.ToLower(text)

	educationOnly := containsAny(lower, []string{"mca", "bachelor", "master"}) &&
		!containsAny(lower, []string{"work", "employ", "job"})
	if educationOnly {
		return 0
	}

	total := 0
	for _, line := range strings.Split(text, "\n") {
		if degreeLine.MatchString(line) {
			continue
		}
		m := jobDateRange.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		end := currentYear
		switch strings.ToLower(m[3]) {
		case "present", "current":
		default:
			if end, err = strconv.Atoi(m[3]); err != nil {
				continue
			}
		}
		duration := max(0, end-start)
		total += min(duration, maxYearsPerJob)
	}
	return total
}

// experienceLevel classifies seniority from estimated years and résumé vocabulary
func experienceLevel(years int, text string) types.ExperienceLevel {
	lower := strings.ToLower(text)

	hasWork := detectWorkExperience(lower)
	internOnly := detectInternshipOnly(lower)
	enrolled := isEnrolled(lower)

	if enrolled && !hasWork && years == 0 {
		if internOnly {
			return types.LevelStudentIntern
		}
		return types.LevelStudent
	}

	if !hasWork && !internOnly && years == 0 {
		if detectProfessionalProjects(lower) {
			return types.LevelFresherProjects
		}
		return types.LevelFresher
	}

	leader := containsAny(lower, leadershipRoles)
	seniorSignals := leader || containsAny(lower, seniorTitles) || containsAny(lower, seniorResponsibilities)

	switch {
	case years >= 8 || (years >= 5 && seniorSignals):
		if years >= 12 || leader {
			return types.LevelSeniorLeader
		}
		return types.LevelSenior
	case years >= 3 || (years >= 2 && countJobPositions(lower) >= 2):
		return types.LevelMid
	case years >= 1 || (hasWork && !internOnly):
		return types.LevelJunior
	case internOnly || hasWork:
		return types.LevelEntry
	}
	return types.LevelFresher
}
