package classifier

import "github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"

// keywordTable maps each domain topic to its per-language keyword lists.
// Every domain topic must carry an entry for every supported language;
// TopicGeneral is the catch-all and has no keywords of its own.
var keywordTable = map[model.Topic]map[model.Language][]string{
	model.TopicEmergency: {
		model.LanguageThai: {
			"เจ็บหน้าอก", "แน่นหน้าอก", "หายใจไม่ออก", "หมดสติ",
			"เลือดออกไม่หยุด", "หกล้ม", "ปากเบี้ยว", "พูดไม่ชัด",
		},
		model.LanguageEnglish: {
			"chest pain", "can't breathe", "cannot breathe", "unconscious",
			"heavy bleeding", "fell down", "stroke", "heart attack",
		},
	},
	model.TopicMedication: {
		model.LanguageThai: {
			"กินยา", "ลืมกินยา", "ขนาดยา", "ยาลดความดัน",
			"ผลข้างเคียง", "ยาเบาหวาน", "แพ้ยา",
		},
		model.LanguageEnglish: {
			"medication", "medicine", "pill", "dosage",
			"side effect", "prescription", "blood pressure drug",
		},
	},
	model.TopicMemory: {
		model.LanguageThai: {
			"หลงลืม", "ความจำ", "สมองเสื่อม", "อัลไซเมอร์", "จำไม่ได้",
		},
		model.LanguageEnglish: {
			"memory", "forgetful", "dementia", "alzheimer", "confused",
		},
	},
	model.TopicSleep: {
		model.LanguageThai: {
			"นอนไม่หลับ", "หลับยาก", "นอนหลับ", "ตื่นกลางดึก", "นอนน้อย",
		},
		model.LanguageEnglish: {
			"sleep", "insomnia", "wake up at night", "sleepless", "restless night",
		},
	},
	model.TopicDiet: {
		model.LanguageThai: {
			"อาหาร", "เบื่ออาหาร", "กินข้าว", "โภชนาการ", "น้ำหนักลด",
		},
		model.LanguageEnglish: {
			"food", "diet", "appetite", "nutrition", "eating",
		},
	},
	model.TopicExercise: {
		model.LanguageThai: {
			"ออกกำลังกาย", "เดินเล่น", "กายภาพบำบัด", "ยืดเส้น", "รำไทเก๊ก",
		},
		model.LanguageEnglish: {
			"exercise", "walking", "physical therapy", "stretching", "tai chi",
		},
	},
	model.TopicMood: {
		model.LanguageThai: {
			"เหงา", "เศร้า", "เครียด", "กังวล", "ท้อแท้", "ไม่มีกำลังใจ",
		},
		model.LanguageEnglish: {
			"lonely", "sad", "stress", "anxious", "depressed", "worried",
		},
	},
}

// advicePhrases is generic "asking for advice" filler that should not by
// itself pull a message out of the general topic.
var advicePhrases = map[model.Language][]string{
	model.LanguageThai: {
		"ขอคำแนะนำ", "ช่วยแนะนำ", "แนะนำหน่อย", "ควรทำอย่างไร",
	},
	model.LanguageEnglish: {
		"please advise", "any advice", "what should i do", "can you recommend",
	},
}
