package catalog

import (
	"fmt"

	"github.com/pavelanni/examcloud/internal/model"
)

var years = []string{"110", "111", "112", "113", "114"}

var semesters = []string{"上學期", "下學期"}

type gradeConfig struct {
	grade, subject string
	examNos        map[string][]string
}

var threeRounds = []string{"第一次", "第二次", "第三次"}

var gradeConfigs = []gradeConfig{
	{"高一", "數學", map[string][]string{"上學期": threeRounds, "下學期": threeRounds}},
	{"高二", "數A", map[string][]string{"上學期": threeRounds, "下學期": threeRounds}},
	{"高二", "數B", map[string][]string{"上學期": threeRounds, "下學期": threeRounds}},
	{"高三", "數甲", map[string][]string{"上學期": threeRounds, "下學期": threeRounds[:2]}},
	{"高三", "數乙", map[string][]string{"上學期": threeRounds, "下學期": threeRounds[:2]}},
}

// generator hands out exam ids from one counter shared by every category.
type generator struct {
	next int
}

func (g *generator) id(prefix string) (examID string, n int) {
	examID = fmt.Sprintf("%s_e%d", prefix, g.next)
	g.next++
	return examID, g.next
}

func copyQuestions(src []model.Question, id func(i int, q model.Question) string) []model.Question {
	out := make([]model.Question, len(src))
	for i, q := range src {
		c := q.Clone()
		c.ID = id(i, q)
		out[i] = c
	}
	return out
}

func (g *generator) schoolExams(schools []model.School) []*model.Exam {
	var exams []*model.Exam
	for _, school := range schools {
		for _, year := range years {
			for _, semester := range semesters {
				for _, cfg := range gradeConfigs {
					for _, examNo := range cfg.examNos[semester] {
						examID, n := g.id("school")
						exams = append(exams, &model.Exam{
							ID:           examID,
							ExamCategory: model.CategorySchool,
							SchoolID:     school.ID,
							Grade:        cfg.grade,
							Subject:      cfg.subject,
							Year:         year,
							Semester:     semester,
							ExamNo:       examNo,
							Title:        fmt.Sprintf("%s %s學年度%s%s%s%s段考", school.Name, year, semester, cfg.grade, cfg.subject, examNo),
							IsPremium:    !school.IsFreeTrial,
							Questions: copyQuestions(questionsFor(cfg.grade, cfg.subject), func(i int, q model.Question) string {
								return fmt.Sprintf("%s_%d_%d", q.ID, n, i)
							}),
						})
					}
				}
			}
		}
	}
	return exams
}

func (g *generator) juniorHighExams() []*model.Exam {
	var exams []*model.Exam
	for _, year := range years {
		for _, subject := range []string{"數學", "國文", "英語", "自然", "社會"} {
			qs := juniorHighQuestions
			if subject != "數學" {
				qs = juniorHighQuestions[:3]
			}
			examID, _ := g.id("junior")
			exams = append(exams, &model.Exam{
				ID:           examID,
				ExamCategory: model.CategoryJuniorHigh,
				Grade:        "國中",
				Subject:      subject,
				Year:         year,
				Title:        fmt.Sprintf("%s年國中教育會考 %s科", year, subject),
				Questions: copyQuestions(qs, func(i int, _ model.Question) string {
					return fmt.Sprintf("jh_%s_%s_%d", year, subject, i)
				}),
			})
		}
	}
	return exams
}

type subjectSet struct {
	name      string
	questions []model.Question
}

func (g *generator) nationalExams(prefix string, category model.ExamCategory, titleFmt string, subjects []subjectSet) []*model.Exam {
	var exams []*model.Exam
	for _, year := range years {
		for _, s := range subjects {
			examID, _ := g.id(prefix)
			exams = append(exams, &model.Exam{
				ID:           examID,
				ExamCategory: category,
				Grade:        "高中",
				Subject:      s.name,
				Year:         year,
				Title:        fmt.Sprintf(titleFmt, year, s.name),
				Questions: copyQuestions(s.questions, func(i int, _ model.Question) string {
					return fmt.Sprintf("%s_%s_%s_%d", prefix, year, s.name, i)
				}),
			})
		}
	}
	return exams
}

func (g *generator) gsatExams() []*model.Exam {
	return g.nationalExams("gsat", model.CategoryGSAT, "%s學年度學科能力測驗 %s", []subjectSet{
		{"數學A", gsatMathAQuestions},
		{"數學B", gsatMathBQuestions},
		{"國文", juniorHighQuestions[:3]},
		{"英文", juniorHighQuestions[:3]},
		{"自然", juniorHighQuestions[:3]},
		{"社會", juniorHighQuestions[:3]},
	})
}

func (g *generator) astExams() []*model.Exam {
	return g.nationalExams("ast", model.CategoryAST, "%s學年度分科測驗 %s", []subjectSet{
		{"數學甲", astMathJiaQuestions},
		{"物理", grade3JiaQuestions[:3]},
		{"化學", grade3JiaQuestions[:3]},
		{"生物", grade3JiaQuestions[:3]},
		{"歷史", grade3YiQuestions[:3]},
		{"地理", grade3YiQuestions[:3]},
		{"公民", grade3YiQuestions[:3]},
	})
}
