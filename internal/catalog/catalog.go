// Package catalog holds the static MADI reference data used for profile
// defaulting and vacancy targeting: the majors catalog and the skills list.
package catalog

// Major is a degree program offered by the university.
type Major struct {
	Code string
	Name string
}

// DefaultUniversity is assigned to every profile the platform creates.
const DefaultUniversity = "МАДИ"

// Majors lists the supported degree programs. The first entry is the default
// used when a profile is synthesized without an explicit major.
var Majors = []Major{
	{Code: "09.03.02", Name: "Информационные системы и технологии"},
	{Code: "01.03.02", Name: "Прикладная математика и информатика"},
	{Code: "23.03.01", Name: "Технология транспортных процессов"},
	{Code: "23.03.03", Name: "Эксплуатация транспортно-технологических машин"},
	{Code: "08.03.01", Name: "Строительство"},
	{Code: "38.03.01", Name: "Экономика"},
	{Code: "38.03.02", Name: "Менеджмент"},
	{Code: "54.03.01", Name: "Дизайн"},
}

// Skills lists the selectable skill tags.
var Skills = []string{
	"JavaScript", "TypeScript", "React", "Node.js", "Python",
	"Go", "Java", "C++", "SQL", "PostgreSQL",
	"HTML/CSS", "Figma", "UI/UX", "Machine Learning", "Pandas",
	"Docker", "Git", "Linux", "Excel", "1C",
	"AutoCAD", "Project Management", "English", "Copywriting", "SMM",
}

// DefaultMajorCode returns the code of the default major.
func DefaultMajorCode() string {
	return Majors[0].Code
}

// MajorByCode looks up a major by its code. The second return value reports
// whether the code is known.
func MajorByCode(code string) (Major, bool) {
	for _, m := range Majors {
		if m.Code == code {
			return m, true
		}
	}
	return Major{}, false
}

// ValidCourse reports whether course is within the supported 1-5 range.
func ValidCourse(course int) bool {
	return course >= 1 && course <= 5
}
