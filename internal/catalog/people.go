package catalog

import (
	"time"

	"github.com/pavelanni/examcloud/internal/model"
)

// DefaultStudentID is the account results are attributed to when a
// submission carries no user.
const DefaultStudentID = "student-001"

// FreeClassName is the class name of students without a class.
const FreeClassName = "免費會員"

type studentRow struct {
	id, name, email, phone, school, class, grade, region string
	plan                                                 model.Plan
	joined, lastActive                                   string
	taken, avg                                           int
}

var studentRows = []studentRow{
	{"student-f01", "游明德", "you.ming@example.com", "0911-000-001", "建國中學", FreeClassName, "高一", "基北區", model.PlanFree, "2025-11-01", "2026-01-18", 2, 65},
	{"student-f02", "林小華", "lin.hua@example.com", "0911-000-002", "北一女中", FreeClassName, "高一", "基北區", model.PlanFree, "2025-11-05", "2026-01-17", 1, 70},
	{"student-f03", "陳志明", "chen.zhi@example.com", "0911-000-003", "師大附中", FreeClassName, "高二", "基北區", model.PlanFree, "2025-10-15", "2026-01-16", 3, 58},
	{"student-f04", "黃美麗", "huang.mei@example.com", "0911-000-004", "武陵高中", FreeClassName, "高二", "桃連區", model.PlanFree, "2025-12-01", "2026-01-15", 0, 0},
	{"student-f05", "李大同", "li.da@example.com", "0911-000-005", "台中一中", FreeClassName, "高三", "中投區", model.PlanFree, "2025-10-20", "2026-01-14", 5, 72},

	{"student-001", "王小明", "wang.ming@example.com", "0912-345-678", "建國中學", "高一a班", "高一", "基北區", model.PlanVIP, "2025-09-01", "2026-01-18", 8, 82},
	{"student-002", "陳美玲", "chen.mei@example.com", "0923-456-789", "北一女中", "高一a班", "高一", "基北區", model.PlanVIP, "2025-09-05", "2026-01-17", 10, 88},
	{"student-003", "林志偉", "lin.wei@example.com", "0934-567-890", "師大附中", "高一a班", "高一", "基北區", model.PlanVIP, "2025-09-10", "2026-01-16", 6, 75},
	{"student-004", "張雅婷", "zhang.ting@example.com", "0945-678-901", "成功高中", "高一a班", "高一", "基北區", model.PlanVIP, "2025-09-12", "2026-01-18", 9, 80},
	{"student-005", "李俊傑", "li.jie@example.com", "0956-789-012", "松山高中", "高一a班", "高一", "基北區", model.PlanVIP, "2025-09-15", "2026-01-15", 7, 77},

	{"student-006", "周家豪", "zhou.hao@example.com", "0911-111-111", "武陵高中", "高一b班", "高一", "桃連區", model.PlanVIP, "2025-09-01", "2026-01-14", 5, 72},
	{"student-007", "許雅琪", "xu.qi@example.com", "0922-222-222", "中壢高中", "高一b班", "高一", "桃連區", model.PlanVIP, "2025-09-03", "2026-01-18", 8, 85},
	{"student-008", "鄭宇軒", "zheng.xuan@example.com", "0933-333-333", "桃園高中", "高一b班", "高一", "桃連區", model.PlanVIP, "2025-09-05", "2026-01-17", 6, 78},

	{"student-009", "黃淑芬", "huang.fen@example.com", "0967-890-123", "中山女中", "高二a班", "高二", "基北區", model.PlanVIP, "2024-09-01", "2026-01-18", 15, 83},
	{"student-010", "劉建國", "liu.guo@example.com", "0978-901-234", "建國中學", "高二a班", "高二", "基北區", model.PlanVIP, "2024-09-05", "2026-01-17", 18, 90},
	{"student-011", "吳佳蓉", "wu.rong@example.com", "0989-012-345", "北一女中", "高二a班", "高二", "基北區", model.PlanVIP, "2024-09-08", "2026-01-16", 12, 86},

	{"student-012", "蔡明哲", "cai.zhe@example.com", "0944-444-444", "武陵高中", "高二b班", "高二", "桃連區", model.PlanVIP, "2024-09-01", "2026-01-18", 16, 88},
	{"student-013", "謝欣怡", "xie.yi@example.com", "0955-555-555", "中壢高中", "高二b班", "高二", "桃連區", model.PlanVIP, "2024-09-08", "2026-01-15", 11, 79},

	{"student-014", "楊子涵", "yang.han@example.com", "0966-666-666", "台中一中", "高三a班", "高三", "中投區", model.PlanVIP, "2023-09-01", "2026-01-18", 28, 92},
	{"student-015", "陳俊宏", "chen.hong@example.com", "0977-777-777", "台中女中", "高三a班", "高三", "中投區", model.PlanVIP, "2023-09-05", "2026-01-17", 25, 85},
	{"student-016", "林佩君", "lin.jun@example.com", "0988-888-888", "興大附中", "高三a班", "高三", "中投區", model.PlanVIP, "2023-09-10", "2026-01-16", 24, 87},
	{"student-017", "王志豪", "wang.hao@example.com", "0999-999-999", "文華高中", "高三a班", "高三", "中投區", model.PlanVIP, "2023-09-12", "2026-01-18", 22, 80},
}

func students() []*model.StudentUser {
	out := make([]*model.StudentUser, len(studentRows))
	for i, r := range studentRows {
		out[i] = &model.StudentUser{
			ID:             r.id,
			Name:           r.name,
			Email:          r.email,
			Phone:          r.phone,
			School:         r.school,
			ClassName:      r.class,
			Grade:          r.grade,
			Region:         r.region,
			Plan:           r.plan,
			JoinDate:       r.joined,
			LastActiveDate: r.lastActive,
			ExamsTaken:     r.taken,
			AvgScore:       r.avg,
			AssignedExams:  []string{},
			Assignments:    []string{},
		}
	}
	return out
}

const day = 24 * time.Hour

func announcements(now time.Time) []model.Announcement {
	ann := func(id, title, content string, typ model.AnnouncementType, age time.Duration, grades, regions []string) model.Announcement {
		return model.Announcement{
			ID:            id,
			Title:         title,
			Content:       content,
			Type:          typ,
			TargetGrades:  grades,
			TargetClasses: []string{},
			TargetRegions: regions,
			CreatedAt:     now.Add(-age),
		}
	}
	none := []string{}
	return []model.Announcement{
		ann("ann1", "🎉 新題目上線！113學年度學測數學A完整解析",
			"113學年度學測數學A科完整題目與詳解已上線，包含影音解析與 AI 解惑功能。立即前往試題清單練習！",
			model.AnnouncementNew, 0, none, none),
		ann("ann2", "🔥 限時優惠！VIP 方案首月 5 折",
			"即日起至月底，新用戶升級 VIP 方案享首月 5 折優惠！解鎖完整詳解、影音教學與 AI 解惑功能。",
			model.AnnouncementPromo, day, none, none),
		ann("ann3", "📢 高三同學注意！學測倒數衝刺班開放報名",
			"針對高三同學推出學測倒數衝刺特訓，每週更新模擬試題與重點解析。",
			model.AnnouncementImportant, 2*day, []string{"高三"}, none),
		ann("ann4", "📚 基北區段考題庫更新",
			"建中、北一女、師大附中等基北區名校 114 學年度第一次段考題目已全數上線！",
			model.AnnouncementNew, 3*day, none, []string{"基北區"}),
		ann("ann5", "💡 系統維護通知",
			"本週日凌晨 2:00-4:00 進行系統維護，届時服務將暫停。造成不便敬請見諒。",
			model.AnnouncementInfo, 4*day, none, none),
	}
}

type resultRow struct {
	id        string
	examIndex int
	userID    string
	answers   []string
	correct   []bool
}

var resultRows = []resultRow{
	{"r1", 0, "student-001", []string{"$1 < x < 5$", "13", "1", "4", "否"}, []bool{true, true, true, false, false}},
	{"r2", 1, "student-002", []string{"$1 < x < 5$", "13", "1", "2", "否"}, []bool{true, true, true, true, false}},
	{"r3", 0, "student-003", []string{"$1 < x < 5$", "11", "2", "2", "否"}, []bool{true, false, false, true, false}},
	{"r4", 5, "student-004", []string{`$\sqrt{39}$`, "5", "4/5", "$3x - y - 1 = 0$", "是"}, []bool{true, true, true, true, true}},
	{"r5", 10, "student-007", []string{"3", "$3x^2 - 6x$", "10", "2", "否"}, []bool{true, true, false, true, false}},
	{"r6", 2, "student-005", []string{"$1 < x < 5$", "13", "1", "2", "否"}, []bool{true, true, true, true, false}},
	{"r7", 6, "student-006", []string{"75, 15", "2/5", "1/6", "12", "否"}, []bool{false, true, true, false, false}},
	{"r8", 0, "student-008", []string{"$1 < x < 5$", "13", "1", "2", "是"}, []bool{true, true, true, true, true}},
}

// results builds the seed ledger against the generated exams, so every
// answer points at a real question id.
func results(exams []*model.Exam, now time.Time) []model.ExamResult {
	out := make([]model.ExamResult, 0, len(resultRows))
	for i, r := range resultRows {
		exam := exams[r.examIndex]
		res := model.ExamResult{
			ID:          r.id,
			ExamID:      model.Ordinary(exam.ID),
			SchoolID:    exam.SchoolID,
			Total:       len(r.answers),
			SubmittedAt: now.Add(-time.Duration(i) * day),
			UserID:      r.userID,
		}
		for j, a := range r.answers {
			res.Answers = append(res.Answers, model.AnswerRecord{
				QuestionID: exam.Questions[j].ID,
				Answer:     a,
				IsCorrect:  r.correct[j],
			})
			if r.correct[j] {
				res.Score++
			}
		}
		out = append(out, res)
	}
	return out
}
