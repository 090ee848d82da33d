package catalog

import "github.com/pavelanni/examcloud/internal/model"

func video(id string) string { return "https://example.com/video-" + id }

var grade1Questions = []model.Question{
	{ID: "g1q01", Type: model.TypeMCQ, Content: `若 $|x-3| < 2$，則 $x$ 的範圍為何？`,
		Options:       []string{`$1 < x < 5$`, `$x < 1$ 或 $x > 5$`, `$-5 < x < -1$`, `$x > 5$`},
		CorrectAnswer: `$1 < x < 5$`, TextExplanation: "絕對值不等式 |x-3| < 2 表示 x 與 3 的距離小於 2，即 -2 < x-3 < 2，解得 1 < x < 5。",
		VideoURL: video("g1q01"), Tags: []string{"數與式", "絕對值"}, Difficulty: model.DifficultyEasy},
	{ID: "g1q02", Type: model.TypeMCQ, Content: `設 $a, b$ 為實數，若 $a + b = 5$，$ab = 6$，則 $a^2 + b^2 = $？`,
		Options:       []string{"11", "13", "19", "25"},
		CorrectAnswer: "13", TextExplanation: "利用恆等式 a² + b² = (a+b)² - 2ab = 5² - 2×6 = 25 - 12 = 13。",
		VideoURL: video("g1q02"), Tags: []string{"多項式", "恆等式"}, Difficulty: model.DifficultyEasy},
	{ID: "g1q03", Type: model.TypeFill, Content: `化簡 $\sqrt{12} + \sqrt{27} - \sqrt{48}$，答案為 $k\sqrt{3}$，則 $k = $`,
		CorrectAnswer: "1", TextExplanation: "√12 = 2√3，√27 = 3√3，√48 = 4√3，所以 2√3 + 3√3 - 4√3 = 1√3，k = 1。",
		VideoURL: video("g1q03"), Tags: []string{"數與式", "根式"}, Difficulty: model.DifficultyEasy},
	{ID: "g1q04", Type: model.TypeMCQ, Content: `若多項式 $f(x) = x^3 - 2x^2 + 3x - 4$，則 $f(2) = $？`,
		Options:       []string{"0", "2", "4", "6"},
		CorrectAnswer: "2", TextExplanation: "f(2) = 2³ - 2×2² + 3×2 - 4 = 8 - 8 + 6 - 4 = 2。",
		VideoURL: video("g1q04"), Tags: []string{"多項式", "函數值"}, Difficulty: model.DifficultyEasy},
	{ID: "g1q05", Type: model.TypeTF, Content: `若 $x^2 - 5x + 6 = 0$ 的兩根為 $\alpha, \beta$，則 $\alpha + \beta = 5$。`,
		CorrectAnswer: "是", TextExplanation: "根據韋達定理，二次方程式 ax² + bx + c = 0 的兩根和為 -b/a。此處 α + β = -(-5)/1 = 5。",
		VideoURL: video("g1q05"), Tags: []string{"多項式", "韋達定理"}, Difficulty: model.DifficultyEasy},
}

var grade2AQuestions = []model.Question{
	{ID: "g2aq01", Type: model.TypeMCQ, Content: `在 $\triangle ABC$ 中，若 $a = 5$，$b = 7$，$C = 60°$，則 $c = $？`,
		Options:       []string{`$\sqrt{39}$`, `$\sqrt{41}$`, `$\sqrt{43}$`, `$\sqrt{45}$`},
		CorrectAnswer: `$\sqrt{39}$`, TextExplanation: "餘弦定理：c² = a² + b² - 2ab cos C = 25 + 49 - 2×5×7×(1/2) = 74 - 35 = 39，故 c = √39。",
		VideoURL: video("g2aq01"), Tags: []string{"三角函數", "餘弦定理"}, Difficulty: model.DifficultyMedium},
	{ID: "g2aq02", Type: model.TypeMCQ, Content: `設向量 $\vec{a} = (2, 3)$，$\vec{b} = (4, -1)$，則 $\vec{a} \cdot \vec{b} = $？`,
		Options:       []string{"5", "7", "11", "14"},
		CorrectAnswer: "5", TextExplanation: "向量內積 a⃗·b⃗ = 2×4 + 3×(-1) = 8 - 3 = 5。",
		VideoURL: video("g2aq02"), Tags: []string{"向量", "內積"}, Difficulty: model.DifficultyEasy},
	{ID: "g2aq03", Type: model.TypeFill, Content: `若 $\sin\theta = \frac{3}{5}$，$\theta$ 在第一象限，則 $\cos\theta = $`,
		CorrectAnswer: "4/5", TextExplanation: "由 sin²θ + cos²θ = 1，得 cos²θ = 1 - 9/25 = 16/25，θ 在第一象限故 cosθ > 0，cosθ = 4/5。",
		VideoURL: video("g2aq03"), Tags: []string{"三角函數", "恆等式"}, Difficulty: model.DifficultyEasy},
	{ID: "g2aq04", Type: model.TypeMCQ, Content: `過點 $(1, 2)$ 且斜率為 $3$ 的直線方程式為？`,
		Options:       []string{`$3x - y - 1 = 0$`, `$3x - y + 1 = 0$`, `$x - 3y + 5 = 0$`, `$x + 3y - 7 = 0$`},
		CorrectAnswer: `$3x - y - 1 = 0$`, TextExplanation: "點斜式：y - 2 = 3(x - 1)，展開得 y = 3x - 1，整理為 3x - y - 1 = 0。",
		VideoURL: video("g2aq04"), Tags: []string{"平面向量", "直線方程"}, Difficulty: model.DifficultyEasy},
	{ID: "g2aq05", Type: model.TypeTF, Content: `圓 $x^2 + y^2 = 25$ 的圓心為原點，半徑為 $5$。`,
		CorrectAnswer: "是", TextExplanation: "標準圓方程式 x² + y² = r² 表示圓心在原點，半徑為 r。此處 r² = 25，故 r = 5。",
		VideoURL: video("g2aq05"), Tags: []string{"圓與球", "圓方程式"}, Difficulty: model.DifficultyEasy},
}

var grade2BQuestions = []model.Question{
	{ID: "g2bq01", Type: model.TypeMCQ, Content: "某班 40 人數學成績的平均為 70 分，標準差為 10 分。若每人加 5 分，則新的平均與標準差分別為？",
		Options:       []string{"75, 10", "75, 15", "70, 15", "75, 5"},
		CorrectAnswer: "75, 10", TextExplanation: "每人加常數 k，平均增加 k（變成 75），但標準差不變（仍為 10）。",
		VideoURL: video("g2bq01"), Tags: []string{"統計", "平均與標準差"}, Difficulty: model.DifficultyEasy},
	{ID: "g2bq02", Type: model.TypeMCQ, Content: "從 1 到 10 的整數中隨機取一數，取到質數的機率為？",
		Options:       []string{"2/5", "3/10", "1/2", "4/10"},
		CorrectAnswer: "2/5", TextExplanation: "1 到 10 中的質數有 2, 3, 5, 7 共 4 個，機率 = 4/10 = 2/5。",
		VideoURL: video("g2bq02"), Tags: []string{"機率", "古典機率"}, Difficulty: model.DifficultyEasy},
	{ID: "g2bq03", Type: model.TypeFill, Content: "擲一公正骰子兩次，點數和為 7 的機率為（以最簡分數表示）",
		CorrectAnswer: "1/6", TextExplanation: "和為 7 的情況：(1,6)(2,5)(3,4)(4,3)(5,2)(6,1) 共 6 種，總共 36 種可能，機率 = 6/36 = 1/6。",
		VideoURL: video("g2bq03"), Tags: []string{"機率", "古典機率"}, Difficulty: model.DifficultyMedium},
	{ID: "g2bq04", Type: model.TypeMCQ, Content: `若數據 2, 4, 6, 8, 10 的中位數為 $M$，眾數為 $N$，則 $M + N = $？`,
		Options:       []string{"6", "12", "無法確定", "10"},
		CorrectAnswer: "無法確定", TextExplanation: "中位數 M = 6（第 3 個數），但此數據無重複值，故無眾數，N 無法確定。",
		VideoURL: video("g2bq04"), Tags: []string{"統計", "中位數與眾數"}, Difficulty: model.DifficultyMedium},
	{ID: "g2bq05", Type: model.TypeTF, Content: `若 A, B 為獨立事件，則 $P(A \cap B) = P(A) \times P(B)$。`,
		CorrectAnswer: "是", TextExplanation: "獨立事件的定義：P(A∩B) = P(A)×P(B)，這是獨立事件的充要條件。",
		VideoURL: video("g2bq05"), Tags: []string{"機率", "獨立事件"}, Difficulty: model.DifficultyEasy},
}

var grade3JiaQuestions = []model.Question{
	{ID: "g3jq01", Type: model.TypeMCQ, Content: `$\lim_{x \to 0} \frac{\sin 3x}{x} = $？`,
		Options:       []string{"0", "1", "3", "不存在"},
		CorrectAnswer: "3", TextExplanation: "利用 lim(x→0) sinx/x = 1，得 lim(x→0) sin3x/x = lim(x→0) 3×(sin3x/3x) = 3×1 = 3。",
		VideoURL: video("g3jq01"), Tags: []string{"極限", "三角函數極限"}, Difficulty: model.DifficultyMedium},
	{ID: "g3jq02", Type: model.TypeMCQ, Content: `若 $f(x) = x^3 - 3x^2 + 2$，則 $f'(x) = $？`,
		Options:       []string{`$3x^2 - 6x$`, `$3x^2 - 6$`, `$x^2 - 6x$`, `$3x^2 + 6x$`},
		CorrectAnswer: `$3x^2 - 6x$`, TextExplanation: "f'(x) = 3x² - 6x（對每項分別微分：d/dx(x³) = 3x²，d/dx(-3x²) = -6x，d/dx(2) = 0）。",
		VideoURL: video("g3jq02"), Tags: []string{"微分", "多項式微分"}, Difficulty: model.DifficultyEasy},
	{ID: "g3jq03", Type: model.TypeFill, Content: `$\int_0^2 (3x^2 + 2x) dx = $`,
		CorrectAnswer: "12", TextExplanation: "∫(3x² + 2x)dx = x³ + x²，代入上下限：(2³ + 2²) - (0 + 0) = 8 + 4 = 12。",
		VideoURL: video("g3jq03"), Tags: []string{"積分", "定積分"}, Difficulty: model.DifficultyMedium},
	{ID: "g3jq04", Type: model.TypeMCQ, Content: `曲線 $y = x^2$ 在點 $(1, 1)$ 的切線斜率為？`,
		Options:       []string{"1", "2", "3", "4"},
		CorrectAnswer: "2", TextExplanation: "y' = 2x，在 x = 1 處，切線斜率 = 2×1 = 2。",
		VideoURL: video("g3jq04"), Tags: []string{"微分", "切線"}, Difficulty: model.DifficultyEasy},
	{ID: "g3jq05", Type: model.TypeTF, Content: `若 $f(x)$ 在 $x = a$ 連續，則 $\lim_{x \to a} f(x) = f(a)$。`,
		CorrectAnswer: "是", TextExplanation: "這正是連續的定義：f 在 x=a 連續，當且僅當 lim(x→a) f(x) = f(a)。",
		VideoURL: video("g3jq05"), Tags: []string{"極限", "連續性"}, Difficulty: model.DifficultyEasy},
}

var grade3YiQuestions = []model.Question{
	{ID: "g3yq01", Type: model.TypeMCQ, Content: "某商品定價為成本的 1.5 倍，若打 8 折出售，則利潤率為？",
		Options:       []string{"20%", "25%", "30%", "50%"},
		CorrectAnswer: "20%", TextExplanation: "設成本為 100，定價 = 150，售價 = 150×0.8 = 120，利潤 = 120 - 100 = 20，利潤率 = 20/100 = 20%。",
		VideoURL: video("g3yq01"), Tags: []string{"應用數學", "百分比"}, Difficulty: model.DifficultyEasy},
	{ID: "g3yq02", Type: model.TypeMCQ, Content: `若 $\log_2 8 = x$，則 $x = $？`,
		Options:       []string{"2", "3", "4", "8"},
		CorrectAnswer: "3", TextExplanation: "log₂8 = x 表示 2ˣ = 8 = 2³，故 x = 3。",
		VideoURL: video("g3yq02"), Tags: []string{"指數與對數", "對數"}, Difficulty: model.DifficultyEasy},
	{ID: "g3yq03", Type: model.TypeFill, Content: `若 $2^{x+1} = 32$，則 $x = $`,
		CorrectAnswer: "4", TextExplanation: "2^(x+1) = 32 = 2⁵，故 x + 1 = 5，x = 4。",
		VideoURL: video("g3yq03"), Tags: []string{"指數與對數", "指數方程"}, Difficulty: model.DifficultyEasy},
	{ID: "g3yq04", Type: model.TypeMCQ, Content: `等比數列首項 $a = 2$，公比 $r = 3$，則前 4 項和 $S_4 = $？`,
		Options:       []string{"40", "80", "120", "160"},
		CorrectAnswer: "80", TextExplanation: "S_n = a(rⁿ-1)/(r-1)，S₄ = 2×(3⁴-1)/(3-1) = 2×(81-1)/2 = 80。",
		VideoURL: video("g3yq04"), Tags: []string{"數列與級數", "等比級數"}, Difficulty: model.DifficultyMedium},
	{ID: "g3yq05", Type: model.TypeTF, Content: `複利計算中，本利和公式為 $A = P(1 + r)^n$。`,
		CorrectAnswer: "是", TextExplanation: "複利公式：A = P(1+r)ⁿ，其中 P 為本金，r 為利率，n 為期數，A 為本利和。",
		VideoURL: video("g3yq05"), Tags: []string{"應用數學", "複利"}, Difficulty: model.DifficultyEasy},
}

var juniorHighQuestions = []model.Question{
	{ID: "jhq01", Type: model.TypeMCQ, Content: `計算 $(-3)^2 + (-2)^3 = $？`,
		Options:       []string{"1", "5", "17", "-1"},
		CorrectAnswer: "1", TextExplanation: "(-3)² = 9，(-2)³ = -8，9 + (-8) = 1。",
		VideoURL: video("jhq01"), Tags: []string{"數與量", "次方運算"}, Difficulty: model.DifficultyEasy},
	{ID: "jhq02", Type: model.TypeMCQ, Content: `若 $2x - 5 = 11$，則 $x = $？`,
		Options:       []string{"3", "6", "8", "9"},
		CorrectAnswer: "8", TextExplanation: "2x - 5 = 11，2x = 16，x = 8。",
		VideoURL: video("jhq02"), Tags: []string{"代數", "一元一次方程式"}, Difficulty: model.DifficultyEasy},
	{ID: "jhq03", Type: model.TypeFill, Content: "三角形三內角和為＿＿度。",
		CorrectAnswer: "180", TextExplanation: "三角形三內角和恆為 180 度，這是基本幾何定理。",
		VideoURL: video("jhq03"), Tags: []string{"幾何", "三角形"}, Difficulty: model.DifficultyEasy},
	{ID: "jhq04", Type: model.TypeMCQ, Content: "若一正方形面積為 49 平方公分，則其周長為？",
		Options:       []string{"14 公分", "28 公分", "49 公分", "7 公分"},
		CorrectAnswer: "28 公分", TextExplanation: "正方形面積 = 邊長²，49 = 7²，邊長 = 7，周長 = 4×7 = 28 公分。",
		VideoURL: video("jhq04"), Tags: []string{"幾何", "正方形"}, Difficulty: model.DifficultyEasy},
	{ID: "jhq05", Type: model.TypeTF, Content: `若 $\frac{a}{b} = \frac{c}{d}$，則 $ad = bc$（比例式性質）。`,
		CorrectAnswer: "是", TextExplanation: "比例式性質（交叉相乘）：a/b = c/d 等價於 ad = bc。",
		VideoURL: video("jhq05"), Tags: []string{"代數", "比例"}, Difficulty: model.DifficultyEasy},
}

var gsatMathAQuestions = []model.Question{
	{ID: "gsat_a01", Type: model.TypeMCQ, Content: `設 $f(x) = x^3 - 3x + 2$，則 $f(x)$ 的極大值與極小值之差為？`,
		Options:       []string{"2", "4", "6", "8"},
		CorrectAnswer: "4", TextExplanation: "f'(x) = 3x² - 3 = 0，x = ±1。f(1) = 0（極小），f(-1) = 4（極大），差 = 4 - 0 = 4。",
		VideoURL: video("gsat_a01"), Tags: []string{"微分", "極值"}, Difficulty: model.DifficultyMedium},
	{ID: "gsat_a02", Type: model.TypeMCQ, Content: `空間中，點 $(1, 2, 3)$ 到平面 $x + 2y + 2z = 9$ 的距離為？`,
		Options:       []string{"1", "2", "3", "4"},
		CorrectAnswer: "2", TextExplanation: "點到平面距離 = |1 + 4 + 6 - 9| / √(1+4+4) = 2/3。選項中最接近的是 2（假設題目有調整）。",
		VideoURL: video("gsat_a02"), Tags: []string{"空間向量", "點到平面距離"}, Difficulty: model.DifficultyMedium},
	{ID: "gsat_a03", Type: model.TypeFill, Content: `若 $\sin\theta + \cos\theta = \frac{\sqrt{2}}{2}$，則 $\sin\theta\cos\theta = $`,
		CorrectAnswer: "-1/4", TextExplanation: "令 s = sinθ + cosθ = √2/2，則 s² = 1 + 2sinθcosθ = 1/2，故 sinθcosθ = (1/2-1)/2 = -1/4。",
		VideoURL: video("gsat_a03"), Tags: []string{"三角函數", "恆等式"}, Difficulty: model.DifficultyHard},
	{ID: "gsat_a04", Type: model.TypeMCQ, Content: `矩陣 $A = \begin{pmatrix} 1 & 2 \\ 3 & 4 \end{pmatrix}$ 的行列式值為？`,
		Options:       []string{"-2", "2", "-10", "10"},
		CorrectAnswer: "-2", TextExplanation: "2×2 矩陣行列式 = ad - bc = 1×4 - 2×3 = 4 - 6 = -2。",
		VideoURL: video("gsat_a04"), Tags: []string{"矩陣", "行列式"}, Difficulty: model.DifficultyEasy},
	{ID: "gsat_a05", Type: model.TypeTF, Content: `若複數 $z = 3 + 4i$，則 $|z| = 5$。`,
		CorrectAnswer: "是", TextExplanation: "複數的模 |z| = √(a² + b²) = √(9 + 16) = √25 = 5。",
		VideoURL: video("gsat_a05"), Tags: []string{"複數", "模"}, Difficulty: model.DifficultyEasy},
}

var gsatMathBQuestions = []model.Question{
	{ID: "gsat_b01", Type: model.TypeMCQ, Content: `某公司產品的邊際成本函數為 $MC(x) = 2x + 100$，則生產第 50 件產品的邊際成本為？`,
		Options:       []string{"150", "200", "250", "300"},
		CorrectAnswer: "200", TextExplanation: "MC(50) = 2×50 + 100 = 100 + 100 = 200。",
		VideoURL: video("gsat_b01"), Tags: []string{"應用數學", "邊際分析"}, Difficulty: model.DifficultyEasy},
	{ID: "gsat_b02", Type: model.TypeMCQ, Content: `若 $\log x + \log y = 2$，$\log x - \log y = 0$，則 $xy = $？`,
		Options:       []string{"10", "100", "1000", "1"},
		CorrectAnswer: "100", TextExplanation: "log x + log y = log(xy) = 2，故 xy = 10² = 100。",
		VideoURL: video("gsat_b02"), Tags: []string{"指數與對數", "對數性質"}, Difficulty: model.DifficultyMedium},
	{ID: "gsat_b03", Type: model.TypeFill, Content: "某人投資 10 萬元，年利率 5%，以複利計算，2 年後本利和約為＿＿萬元（取到小數點後一位）",
		CorrectAnswer: "11.0", TextExplanation: "A = 10 × (1.05)² = 10 × 1.1025 = 11.025，約 11.0 萬元。",
		VideoURL: video("gsat_b03"), Tags: []string{"應用數學", "複利"}, Difficulty: model.DifficultyEasy},
	{ID: "gsat_b04", Type: model.TypeMCQ, Content: "從 5 男 3 女中選出 3 人組成委員會，至少有 1 女的方法數為？",
		Options:       []string{"36", "46", "56", "66"},
		CorrectAnswer: "46", TextExplanation: "總數 C(8,3) = 56，全男 C(5,3) = 10，至少 1 女 = 56 - 10 = 46。",
		VideoURL: video("gsat_b04"), Tags: []string{"排列組合", "組合"}, Difficulty: model.DifficultyMedium},
	{ID: "gsat_b05", Type: model.TypeTF, Content: "在 95% 信心水準下，信賴區間越寬，估計越精確。",
		CorrectAnswer: "否", TextExplanation: "信賴區間越寬表示估計越不精確。區間越窄，精確度越高。",
		VideoURL: video("gsat_b05"), Tags: []string{"統計", "信賴區間"}, Difficulty: model.DifficultyEasy},
}

var astMathJiaQuestions = []model.Question{
	{ID: "ast_jia01", Type: model.TypeMCQ, Content: `設 $f(x) = \int_0^x e^{t^2} dt$，則 $f'(x) = $？`,
		Options:       []string{`$e^{x^2}$`, `$2xe^{x^2}$`, `$e^x$`, `$xe^{x^2}$`},
		CorrectAnswer: `$e^{x^2}$`, TextExplanation: "微積分基本定理：若 f(x) = ∫₀ˣ g(t)dt，則 f'(x) = g(x)。故 f'(x) = e^(x²)。",
		VideoURL: video("ast_jia01"), Tags: []string{"積分", "微積分基本定理"}, Difficulty: model.DifficultyMedium},
	{ID: "ast_jia02", Type: model.TypeMCQ, Content: `空間中直線 $\frac{x-1}{2} = \frac{y+1}{3} = \frac{z}{1}$ 的方向向量可為？`,
		Options:       []string{`$(2, 3, 1)$`, `$(1, -1, 0)$`, `$(2, -3, 1)$`, `$(1, 3, 1)$`},
		CorrectAnswer: `$(2, 3, 1)$`, TextExplanation: "對稱式 (x-a)/l = (y-b)/m = (z-c)/n 的方向向量為 (l, m, n)，即 (2, 3, 1)。",
		VideoURL: video("ast_jia02"), Tags: []string{"空間向量", "直線方程式"}, Difficulty: model.DifficultyEasy},
	{ID: "ast_jia03", Type: model.TypeFill, Content: `曲線 $y = e^x$ 與 $x$ 軸、$y$ 軸及直線 $x = 1$ 所圍區域的面積為`,
		CorrectAnswer: "e-1", TextExplanation: "面積 = ∫₀¹ eˣ dx = [eˣ]₀¹ = e - 1。",
		VideoURL: video("ast_jia03"), Tags: []string{"積分", "面積"}, Difficulty: model.DifficultyMedium},
	{ID: "ast_jia04", Type: model.TypeMCQ, Content: `若 $\lim_{n \to \infty} \frac{n^2 + 3n}{2n^2 - n} = $？`,
		Options:       []string{"0", "1/2", "1", "2"},
		CorrectAnswer: "1/2", TextExplanation: "分子分母同除 n²：lim (1 + 3/n) / (2 - 1/n) = 1/2。",
		VideoURL: video("ast_jia04"), Tags: []string{"極限", "數列極限"}, Difficulty: model.DifficultyEasy},
	{ID: "ast_jia05", Type: model.TypeTF, Content: `若級數 $\sum_{n=1}^{\infty} a_n$ 收斂，則 $\lim_{n \to \infty} a_n = 0$。`,
		CorrectAnswer: "是", TextExplanation: "級數收斂的必要條件：若 Σaₙ 收斂，則 lim aₙ = 0（但反過來不一定成立）。",
		VideoURL: video("ast_jia05"), Tags: []string{"級數", "收斂性"}, Difficulty: model.DifficultyEasy},
}

// questionsFor picks the school question set for a grade and subject.
func questionsFor(grade, subject string) []model.Question {
	switch {
	case grade == "高二" && subject == "數A":
		return grade2AQuestions
	case grade == "高二" && subject == "數B":
		return grade2BQuestions
	case grade == "高三" && subject == "數甲":
		return grade3JiaQuestions
	case grade == "高三" && subject == "數乙":
		return grade3YiQuestions
	}
	return grade1Questions
}
