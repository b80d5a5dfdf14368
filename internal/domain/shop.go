package domain

import "net/url"

// Shop is one physical store. Text fields come in both UI languages.
type Shop struct {
	NameJA, NameEN       string
	AddressJA, AddressEN string
	MapsURL              string
	WalkMins             int // from Kiyomizu-dera
}

// DirectionsURL falls back to a maps search when no share link exists.
func (s Shop) DirectionsURL(name, address string) string {
	if s.MapsURL != "" {
		return s.MapsURL
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name+" "+address)
}

type Attraction struct {
	NameJA, NameEN string
	DescJA, DescEN string
}

func Shops() []Shop {
	return []Shop{
		{
			NameJA: "たけとら 高台寺店", NameEN: "Taketora Kodaiji",
			AddressJA: "〒605-0824 京都府京都市東山区南町421-2",
			AddressEN: "421-2 Minamimachi, Higashiyama Ward, Kyoto, 605-0824, Japan",
			MapsURL:   "https://maps.app.goo.gl/uffSvD9BWBj35SmB6",
			WalkMins:  6,
		},
		{
			NameJA: "たけとら 清水寺店", NameEN: "Taketora Kiyomizu",
			AddressJA: "〒605-0848 京都府京都市東山区五条橋東6丁目539-49",
			AddressEN: "6 Chome-539-49 Gojobashihigashi, Higashiyama Ward, Kyoto, 605-0848, Japan",
			WalkMins:  12,
		},
		{
			NameJA: "たけとら 亀屋町店", NameEN: "Taketora Kameyacho",
			AddressJA: "〒600-8451 京都府京都市下京区亀屋町51",
			AddressEN: "51 Kameyacho, Shimogyo Ward, Kyoto, 600-8451, Japan",
			WalkMins:  18,
		},
	}
}

func Attractions() []Attraction {
	return []Attraction{
		{"清水寺", "Kiyomizu-dera Temple", "パノラマビューが美しい歴史的な木造建築", "Historic wooden temple with panoramic city views"},
		{"伏見稲荷大社", "Fushimi Inari Shrine", "千本鳥居で有名な神社", "Famous shrine with thousands of vermillion torii gates"},
		{"祇園", "Gion District", "伝統的な花街、保存された町家が並ぶ", "Traditional geisha district with preserved machiya houses"},
		{"八坂神社", "Yasaka Shrine", "祇園の中心にある美しい神社", "Beautiful shrine in the heart of Gion"},
		{"二年坂・三年坂", "Ninenzaka & Sannenzaka", "清水寺へ続く風情ある石畳の坂道", "Charming preserved streets leading to Kiyomizu-dera"},
		{"円山公園", "Maruyama Park", "桜の名所として人気のスポット", "Popular cherry blossom viewing spot"},
	}
}
