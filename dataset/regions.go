package dataset

import "sort"

// RegionOther is the bucket for provinces outside the lookup, including rows
// with no province at all. Every row is always assignable to exactly one region.
const RegionOther = "其他"

// regionMapping maps the 34 provincial-level units to coarse sales regions.
// 港澳台 units map to RegionOther explicitly so the table stays exhaustive.
var regionMapping = map[string]string{
	"北京": "华北", "天津": "华北", "河北省": "华北", "山西省": "华北", "内蒙古自治区": "华北",
	"辽宁省": "东北", "吉林省": "东北", "黑龙江省": "东北",
	"上海": "华东", "江苏省": "华东", "浙江省": "华东", "安徽省": "华东", "福建省": "华东",
	"江西省": "华东", "山东省": "华东",
	"河南省": "华中", "湖北省": "华中", "湖南省": "华中",
	"广东省": "华南", "广西壮族自治区": "华南", "海南省": "华南",
	"重庆": "西南", "四川省": "西南", "贵州省": "西南", "云南省": "西南", "西藏自治区": "西南",
	"陕西省": "西北", "甘肃省": "西北", "青海省": "西北", "宁夏回族自治区": "西北", "新疆维吾尔自治区": "西北",
	"香港特别行政区": RegionOther, "澳门特别行政区": RegionOther, "台湾省": RegionOther,
}

// RegionForProvince resolves a province name to its region, falling back to
// RegionOther for anything outside the lookup.
func RegionForProvince(province string) string {
	if r, ok := regionMapping[province]; ok {
		return r
	}
	return RegionOther
}

// Provinces returns the provinces covered by the lookup, sorted for stable output.
func Provinces() []string {
	out := make([]string, 0, len(regionMapping))
	for p := range regionMapping {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
