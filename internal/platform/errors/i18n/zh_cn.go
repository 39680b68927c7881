package i18n

var zhCNCatalog = &Catalog{
	locale: "zh-CN",
	messages: map[Code]string{
		CodeWorldAlreadyExists: "世界已存在，同一时间只能存在一个世界",
		CodeWorldMissing:       "没有世界，请先创建世界",

		CodeNotFound: "未找到ID为{{.ID}}的{{.Entity}}",

		CodeLocationNotFound:              "找不到ID为{{.LocationID}}的地点",
		CodeLocationRootDeletionForbidden: "不能删除世界根节点",
		CodeLocationHasChildren:           "地点{{.ID}}包含子地点，请先删除子地点或使用force=true参数强制删除",

		CodePlotDuplicateID:                "ID为{{.ID}}的剧情已存在",
		CodePlotInvalidCharacterReferences: "以下角色ID不存在: {{.CharacterIDs}}",

		CodePersistenceFailed: "修改已生效但保存失败",
	},
}
