package geo

import "strings"

// Place is a named location with decimal-degree coordinates.
type Place struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// places maps well-known Korean place names to coordinates. Resolution is
// exact-match first, then substring in either direction, so "세종 반곡동"
// resolves both from "반곡동" and from "세종특별자치시 반곡동".
var places = map[string]Place{
	// Metropolitan cities and provinces.
	"서울":      {Name: "서울", Lat: 37.5665, Lon: 126.9780},
	"서울특별시":   {Name: "서울특별시", Lat: 37.5665, Lon: 126.9780},
	"부산":      {Name: "부산", Lat: 35.1796, Lon: 129.0756},
	"부산광역시":   {Name: "부산광역시", Lat: 35.1796, Lon: 129.0756},
	"대구":      {Name: "대구", Lat: 35.8714, Lon: 128.6014},
	"대구광역시":   {Name: "대구광역시", Lat: 35.8714, Lon: 128.6014},
	"인천":      {Name: "인천", Lat: 37.4563, Lon: 126.7052},
	"인천광역시":   {Name: "인천광역시", Lat: 37.4563, Lon: 126.7052},
	"광주":      {Name: "광주", Lat: 35.1595, Lon: 126.8526},
	"광주광역시":   {Name: "광주광역시", Lat: 35.1595, Lon: 126.8526},
	"대전":      {Name: "대전", Lat: 36.3504, Lon: 127.3845},
	"대전광역시":   {Name: "대전광역시", Lat: 36.3504, Lon: 127.3845},
	"울산":      {Name: "울산", Lat: 35.5384, Lon: 129.3114},
	"울산광역시":   {Name: "울산광역시", Lat: 35.5384, Lon: 129.3114},
	"세종":      {Name: "세종", Lat: 36.4800, Lon: 127.2890},
	"세종시":     {Name: "세종시", Lat: 36.4800, Lon: 127.2890},
	"세종특별자치시": {Name: "세종특별자치시", Lat: 36.4800, Lon: 127.2890},
	"경기도":     {Name: "경기도", Lat: 37.4138, Lon: 127.5183},
	"강원도":     {Name: "강원도", Lat: 37.8228, Lon: 128.1555},
	"강원특별자치도": {Name: "강원특별자치도", Lat: 37.8228, Lon: 128.1555},
	"충청북도":    {Name: "충청북도", Lat: 36.6357, Lon: 127.4917},
	"충청남도":    {Name: "충청남도", Lat: 36.6588, Lon: 126.6728},
	"전라북도":    {Name: "전라북도", Lat: 35.8203, Lon: 127.1088},
	"전북특별자치도": {Name: "전북특별자치도", Lat: 35.8203, Lon: 127.1088},
	"전라남도":    {Name: "전라남도", Lat: 34.8161, Lon: 126.4629},
	"경상북도":    {Name: "경상북도", Lat: 36.4919, Lon: 128.8889},
	"경상남도":    {Name: "경상남도", Lat: 35.4606, Lon: 128.2132},
	"제주":      {Name: "제주", Lat: 33.4996, Lon: 126.5312},
	"제주도":     {Name: "제주도", Lat: 33.4996, Lon: 126.5312},
	"제주특별자치도": {Name: "제주특별자치도", Lat: 33.4996, Lon: 126.5312},

	// Seoul districts.
	"강남구":  {Name: "강남구", Lat: 37.5172, Lon: 127.0473},
	"강동구":  {Name: "강동구", Lat: 37.5301, Lon: 127.1238},
	"강북구":  {Name: "강북구", Lat: 37.6396, Lon: 127.0257},
	"강서구":  {Name: "강서구", Lat: 37.5509, Lon: 126.8495},
	"관악구":  {Name: "관악구", Lat: 37.4784, Lon: 126.9516},
	"광진구":  {Name: "광진구", Lat: 37.5384, Lon: 127.0822},
	"구로구":  {Name: "구로구", Lat: 37.4954, Lon: 126.8874},
	"노원구":  {Name: "노원구", Lat: 37.6542, Lon: 127.0568},
	"도봉구":  {Name: "도봉구", Lat: 37.6688, Lon: 127.0471},
	"동작구":  {Name: "동작구", Lat: 37.5124, Lon: 126.9393},
	"마포구":  {Name: "마포구", Lat: 37.5663, Lon: 126.9019},
	"서초구":  {Name: "서초구", Lat: 37.4837, Lon: 127.0324},
	"성동구":  {Name: "성동구", Lat: 37.5634, Lon: 127.0369},
	"송파구":  {Name: "송파구", Lat: 37.5145, Lon: 127.1059},
	"영등포구": {Name: "영등포구", Lat: 37.5264, Lon: 126.8962},
	"용산구":  {Name: "용산구", Lat: 37.5324, Lon: 126.9900},
	"잠실":   {Name: "잠실", Lat: 37.5133, Lon: 127.1001},
	"여의도":  {Name: "여의도", Lat: 37.5219, Lon: 126.9245},

	// Gyeonggi and the capital region.
	"수원":  {Name: "수원", Lat: 37.2636, Lon: 127.0286},
	"수원시": {Name: "수원시", Lat: 37.2636, Lon: 127.0286},
	"성남":  {Name: "성남", Lat: 37.4201, Lon: 127.1262},
	"성남시": {Name: "성남시", Lat: 37.4201, Lon: 127.1262},
	"고양":  {Name: "고양", Lat: 37.6584, Lon: 126.8320},
	"고양시": {Name: "고양시", Lat: 37.6584, Lon: 126.8320},
	"용인":  {Name: "용인", Lat: 37.2411, Lon: 127.1776},
	"용인시": {Name: "용인시", Lat: 37.2411, Lon: 127.1776},
	"부천":  {Name: "부천", Lat: 37.5034, Lon: 126.7660},
	"안산":  {Name: "안산", Lat: 37.3219, Lon: 126.8309},
	"안양":  {Name: "안양", Lat: 37.3943, Lon: 126.9568},
	"평택":  {Name: "평택", Lat: 36.9921, Lon: 127.1127},
	"의정부": {Name: "의정부", Lat: 37.7381, Lon: 127.0337},
	"파주":  {Name: "파주", Lat: 37.7600, Lon: 126.7800},
	"김포":  {Name: "김포", Lat: 37.6153, Lon: 126.7156},
	"광명":  {Name: "광명", Lat: 37.4786, Lon: 126.8644},
	"남양주": {Name: "남양주", Lat: 37.6360, Lon: 127.2165},
	"하남":  {Name: "하남", Lat: 37.5393, Lon: 127.2148},
	"구리":  {Name: "구리", Lat: 37.5943, Lon: 127.1296},
	"양평":  {Name: "양평", Lat: 37.4917, Lon: 127.4877},
	"가평":  {Name: "가평", Lat: 37.8315, Lon: 127.5097},
	"여주":  {Name: "여주", Lat: 37.2984, Lon: 127.6370},
	"이천":  {Name: "이천", Lat: 37.2720, Lon: 127.4350},
	"연천":  {Name: "연천", Lat: 38.0966, Lon: 127.0747},
	"포천":  {Name: "포천", Lat: 37.8949, Lon: 127.2003},

	// Gangwon.
	"춘천":  {Name: "춘천", Lat: 37.8813, Lon: 127.7298},
	"춘천시": {Name: "춘천시", Lat: 37.8813, Lon: 127.7298},
	"원주":  {Name: "원주", Lat: 37.3422, Lon: 127.9202},
	"강릉":  {Name: "강릉", Lat: 37.7519, Lon: 128.8761},
	"속초":  {Name: "속초", Lat: 38.2070, Lon: 128.5918},
	"동해":  {Name: "동해", Lat: 37.5247, Lon: 129.1143},
	"삼척":  {Name: "삼척", Lat: 37.4499, Lon: 129.1658},
	"태백":  {Name: "태백", Lat: 37.1641, Lon: 128.9856},
	"홍천":  {Name: "홍천", Lat: 37.6971, Lon: 127.8888},
	"횡성":  {Name: "횡성", Lat: 37.4917, Lon: 127.9851},
	"평창":  {Name: "평창", Lat: 37.3705, Lon: 128.3903},
	"정선":  {Name: "정선", Lat: 37.3807, Lon: 128.6608},
	"철원":  {Name: "철원", Lat: 38.1466, Lon: 127.3134},
	"화천":  {Name: "화천", Lat: 38.1062, Lon: 127.7082},
	"양구":  {Name: "양구", Lat: 38.1100, Lon: 127.9899},
	"인제":  {Name: "인제", Lat: 38.0695, Lon: 128.1707},

	// Chungcheong.
	"청주": {Name: "청주", Lat: 36.6424, Lon: 127.4890},
	"충주": {Name: "충주", Lat: 36.9910, Lon: 127.9259},
	"제천": {Name: "제천", Lat: 37.1326, Lon: 128.1910},
	"천안": {Name: "천안", Lat: 36.8151, Lon: 127.1139},
	"공주": {Name: "공주", Lat: 36.4465, Lon: 127.1190},
	"보령": {Name: "보령", Lat: 36.3331, Lon: 126.6127},
	"아산": {Name: "아산", Lat: 36.7898, Lon: 127.0019},
	"서산": {Name: "서산", Lat: 36.7848, Lon: 126.4503},
	"논산": {Name: "논산", Lat: 36.1872, Lon: 127.0986},
	"부여": {Name: "부여", Lat: 36.2756, Lon: 126.9099},
	"금산": {Name: "금산", Lat: 36.1089, Lon: 127.4881},
	"옥천": {Name: "옥천", Lat: 36.3063, Lon: 127.5713},
	"영동": {Name: "영동", Lat: 36.1750, Lon: 127.7764},
	"괴산": {Name: "괴산", Lat: 36.8154, Lon: 127.7867},
	"단양": {Name: "단양", Lat: 36.9846, Lon: 128.3655},
	"세종 반곡동": {Name: "세종 반곡동", Lat: 36.4877, Lon: 127.2827},
	"반곡동":    {Name: "반곡동", Lat: 36.4877, Lon: 127.2827},
	"조치원":    {Name: "조치원", Lat: 36.6010, Lon: 127.2970},

	// Jeolla.
	"전주": {Name: "전주", Lat: 35.8242, Lon: 127.1480},
	"군산": {Name: "군산", Lat: 35.9676, Lon: 126.7366},
	"익산": {Name: "익산", Lat: 35.9483, Lon: 126.9576},
	"정읍": {Name: "정읍", Lat: 35.5699, Lon: 126.8559},
	"남원": {Name: "남원", Lat: 35.4164, Lon: 127.3904},
	"김제": {Name: "김제", Lat: 35.8036, Lon: 126.8809},
	"완주": {Name: "완주", Lat: 35.9048, Lon: 127.1620},
	"임실": {Name: "임실", Lat: 35.6176, Lon: 127.2891},
	"순창": {Name: "순창", Lat: 35.3741, Lon: 127.1376},
	"진안": {Name: "진안", Lat: 35.7917, Lon: 127.4247},
	"무주": {Name: "무주", Lat: 36.0069, Lon: 127.6608},
	"목포": {Name: "목포", Lat: 34.8118, Lon: 126.3922},
	"여수": {Name: "여수", Lat: 34.7604, Lon: 127.6622},
	"순천": {Name: "순천", Lat: 34.9507, Lon: 127.4872},
	"나주": {Name: "나주", Lat: 35.0158, Lon: 126.7108},
	"광양": {Name: "광양", Lat: 34.9407, Lon: 127.6959},
	"담양": {Name: "담양", Lat: 35.3214, Lon: 126.9882},
	"곡성": {Name: "곡성", Lat: 35.2820, Lon: 127.2920},
	"구례": {Name: "구례", Lat: 35.2024, Lon: 127.4629},
	"보성": {Name: "보성", Lat: 34.7714, Lon: 127.0799},
	"화순": {Name: "화순", Lat: 35.0645, Lon: 126.9864},
	"장흥": {Name: "장흥", Lat: 34.6816, Lon: 126.9070},
	"해남": {Name: "해남", Lat: 34.5734, Lon: 126.5990},
	"영암": {Name: "영암", Lat: 34.8001, Lon: 126.6968},
	"함평": {Name: "함평", Lat: 35.0659, Lon: 126.5166},
	"영광": {Name: "영광", Lat: 35.2772, Lon: 126.5120},
	"장성": {Name: "장성", Lat: 35.3018, Lon: 126.7848},

	// Gyeongsang.
	"포항":  {Name: "포항", Lat: 36.0190, Lon: 129.3435},
	"경주":  {Name: "경주", Lat: 35.8562, Lon: 129.2247},
	"김천":  {Name: "김천", Lat: 36.1398, Lon: 128.1136},
	"안동":  {Name: "안동", Lat: 36.5684, Lon: 128.7294},
	"구미":  {Name: "구미", Lat: 36.1195, Lon: 128.3446},
	"영주":  {Name: "영주", Lat: 36.8056, Lon: 128.6241},
	"영천":  {Name: "영천", Lat: 35.9733, Lon: 128.9386},
	"영천시": {Name: "영천시", Lat: 35.9733, Lon: 128.9386},
	"상주":  {Name: "상주", Lat: 36.4109, Lon: 128.1591},
	"문경":  {Name: "문경", Lat: 36.5866, Lon: 128.1869},
	"경산":  {Name: "경산", Lat: 35.8251, Lon: 128.7414},
	"의성":  {Name: "의성", Lat: 36.3526, Lon: 128.6971},
	"청송":  {Name: "청송", Lat: 36.4362, Lon: 129.0572},
	"영양":  {Name: "영양", Lat: 36.6667, Lon: 129.1124},
	"영덕":  {Name: "영덕", Lat: 36.4150, Lon: 129.3661},
	"청도":  {Name: "청도", Lat: 35.6474, Lon: 128.7340},
	"고령":  {Name: "고령", Lat: 35.7260, Lon: 128.2629},
	"성주":  {Name: "성주", Lat: 35.9190, Lon: 128.2829},
	"칠곡":  {Name: "칠곡", Lat: 35.9956, Lon: 128.4016},
	"예천":  {Name: "예천", Lat: 36.6546, Lon: 128.4517},
	"봉화":  {Name: "봉화", Lat: 36.8932, Lon: 128.7325},
	"울진":  {Name: "울진", Lat: 36.9930, Lon: 129.4006},
	"창원":  {Name: "창원", Lat: 35.2281, Lon: 128.6811},
	"진주":  {Name: "진주", Lat: 35.1800, Lon: 128.1076},
	"통영":  {Name: "통영", Lat: 34.8544, Lon: 128.4331},
	"사천":  {Name: "사천", Lat: 35.0037, Lon: 128.0642},
	"김해":  {Name: "김해", Lat: 35.2285, Lon: 128.8894},
	"밀양":  {Name: "밀양", Lat: 35.5038, Lon: 128.7467},
	"거제":  {Name: "거제", Lat: 34.8806, Lon: 128.6211},
	"양산":  {Name: "양산", Lat: 35.3350, Lon: 129.0372},
	"의령":  {Name: "의령", Lat: 35.3222, Lon: 128.2617},
	"함안":  {Name: "함안", Lat: 35.2724, Lon: 128.4065},
	"창녕":  {Name: "창녕", Lat: 35.5444, Lon: 128.4923},
	"하동":  {Name: "하동", Lat: 35.0672, Lon: 127.7514},
	"산청":  {Name: "산청", Lat: 35.4156, Lon: 127.8734},
	"함양":  {Name: "함양", Lat: 35.5204, Lon: 127.7251},
	"거창":  {Name: "거창", Lat: 35.6866, Lon: 127.9095},
	"합천":  {Name: "합천", Lat: 35.5665, Lon: 128.1659},

	// Jeju.
	"제주시": {Name: "제주시", Lat: 33.4996, Lon: 126.5312},
	"서귀포": {Name: "서귀포", Lat: 33.2541, Lon: 126.5601},

	// Major rivers and dams that show up in queries.
	"한강":   {Name: "한강", Lat: 37.5311, Lon: 126.9810},
	"낙동강":  {Name: "낙동강", Lat: 35.8000, Lon: 128.5000},
	"금강":   {Name: "금강", Lat: 36.4500, Lon: 127.1200},
	"영산강":  {Name: "영산강", Lat: 35.0000, Lon: 126.7200},
	"섬진강":  {Name: "섬진강", Lat: 35.1000, Lon: 127.5500},
	"소양강댐": {Name: "소양강댐", Lat: 37.9440, Lon: 127.8200},
	"충주댐":  {Name: "충주댐", Lat: 36.9930, Lon: 127.9960},
	"대청댐":  {Name: "대청댐", Lat: 36.4770, Lon: 127.4810},
	"안동댐":  {Name: "안동댐", Lat: 36.5780, Lon: 128.7680},
	"영천댐":  {Name: "영천댐", Lat: 35.9980, Lon: 129.0200},
	"팔당댐":  {Name: "팔당댐", Lat: 37.5220, Lon: 127.2770},
	"섬진강댐": {Name: "섬진강댐", Lat: 35.5920, Lon: 127.1200},
	"주암댐":  {Name: "주암댐", Lat: 35.0570, Lon: 127.2380},
	"합천댐":  {Name: "합천댐", Lat: 35.5270, Lon: 128.0330},
	"남강댐":  {Name: "남강댐", Lat: 35.1600, Lon: 128.0370},
	"임하댐":  {Name: "임하댐", Lat: 36.5150, Lon: 128.8870},
	"용담댐":  {Name: "용담댐", Lat: 35.9410, Lon: 127.5260},
}

// Lookup resolves a place name to coordinates. Exact match wins; otherwise
// the first name that contains the query, or that the query contains, is
// returned (longest-name candidates first to prefer more specific entries).
func Lookup(name string) (Place, bool) {
	q := strings.TrimSpace(name)
	if q == "" {
		return Place{}, false
	}

	if p, ok := places[q]; ok {
		return p, true
	}

	var best Place
	bestLen := -1
	for key, p := range places {
		if strings.Contains(key, q) || strings.Contains(q, key) {
			if len(key) > bestLen {
				best, bestLen = p, len(key)
			}
		}
	}
	if bestLen >= 0 {
		return best, true
	}
	return Place{}, false
}

// PlaceCount reports the size of the built-in gazetteer.
func PlaceCount() int { return len(places) }
