package catalog

import "github.com/pavelanni/examcloud/internal/model"

type schoolRow struct {
	id, name, region string
	freeTrial        bool
}

var schoolRows = []schoolRow{
	{"test01", "【測試】良師塾高中", "測試區", true},

	{"s01", "建國中學", "基北區", true},
	{"s02", "北一女中", "基北區", true},
	{"s03", "師大附中", "基北區", false},
	{"s04", "成功高中", "基北區", false},
	{"s05", "中山女中", "基北區", false},
	{"s06", "松山高中", "基北區", false},
	{"s07", "大同高中", "基北區", false},
	{"s08", "薇閣高中", "基北區", false},

	{"s09", "武陵高中", "桃連區", false},
	{"s10", "中壢高中", "桃連區", false},
	{"s11", "桃園高中", "桃連區", false},
	{"s12", "內壢高中", "桃連區", false},
	{"s13", "陽明高中", "桃連區", false},

	{"s14", "新竹實驗中學", "竹苗區", false},
	{"s15", "新竹高中", "竹苗區", false},
	{"s16", "新竹女中", "竹苗區", false},
	{"s17", "竹北高中", "竹苗區", false},
	{"s18", "建功高中", "竹苗區", false},
	{"s19", "六家高中", "竹苗區", false},

	{"s20", "台中一中", "中投區", true},
	{"s21", "台中女中", "中投區", false},
	{"s22", "興大附中", "中投區", false},
	{"s23", "文華高中", "中投區", false},
	{"s24", "台中二中", "中投區", false},
	{"s25", "惠文高中", "中投區", false},
	{"s26", "忠明高中", "中投區", false},

	{"s27", "彰化高中", "彰化區", false},
	{"s28", "彰化女中", "彰化區", false},
	{"s29", "精誠中學", "彰化區", false},
	{"s30", "員林高中", "彰化區", false},
	{"s31", "彰化藝術高中", "彰化區", false},
	{"s32", "溪湖高中", "彰化區", false},

	{"s33", "斗六高中", "雲林區", false},
	{"s34", "虎尾高中", "雲林區", false},
	{"s35", "正心中學", "雲林區", false},
	{"s36", "麥寮高中", "雲林區", false},
	{"s37", "斗南高中", "雲林區", false},

	{"s38", "嘉義高中", "嘉義區", false},
	{"s39", "嘉義女中", "嘉義區", false},
	{"s40", "嘉義高工", "嘉義區", false},
	{"s41", "新港藝術高中", "嘉義區", false},
	{"s42", "民雄農工", "嘉義區", false},

	{"s43", "台南一中", "台南區", false},
	{"s44", "台南女中", "台南區", false},
	{"s45", "南科實中", "台南區", false},
	{"s46", "家齊高中", "台南區", false},
	{"s47", "台南二中", "台南區", false},
	{"s48", "大灣高中", "台南區", false},

	{"s49", "高雄中學", "高雄區", false},
	{"s50", "高雄女中", "高雄區", false},
	{"s51", "高師大附中", "高雄區", false},
	{"s52", "鳳山高中", "高雄區", false},
	{"s53", "鳳新高中", "高雄區", false},
	{"s54", "新莊高中", "高雄區", false},
}

func schools() []model.School {
	out := make([]model.School, len(schoolRows))
	for i, r := range schoolRows {
		out[i] = model.School{ID: r.id, Name: r.name, Region: r.region, IsFreeTrial: r.freeTrial}
	}
	return out
}
