package escalation

import "github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"

// emergencyKeywords lists urgent-symptom phrases per language. These are
// deliberately separate from the classifier's topic tables: a message on any
// topic can still describe an emergency.
var emergencyKeywords = map[model.Language][]string{
	model.LanguageThai: {
		"เจ็บหน้าอก", "แน่นหน้าอก", "หายใจไม่ออก", "หมดสติ",
		"เลือดออกไม่หยุด", "ชักเกร็ง", "ปากเบี้ยว", "แขนขาอ่อนแรง",
	},
	model.LanguageEnglish: {
		"chest pain", "can't breathe", "cannot breathe", "unconscious",
		"heavy bleeding", "seizure", "stroke", "overdose",
	},
}

// displayMessages is the template table keyed by reason and language.
// Lookup is pure; there is no randomness in the contextual text.
var displayMessages = map[Reason]map[model.Language]string{
	ReasonEmergency: {
		model.LanguageThai:    "อาการที่เล่ามาอาจเป็นภาวะฉุกเฉิน กรุณาโทร 1669 หรือกดปุ่มด้านล่างเพื่อติดต่อเจ้าหน้าที่ทันที",
		model.LanguageEnglish: "What you describe may be an emergency. Please call 1669 now, or tap below to reach our staff immediately.",
	},
	ReasonComplexTopic: {
		model.LanguageThai:    "เรื่องนี้ควรได้รับคำแนะนำจากผู้ดูแลโดยตรง กดปุ่มด้านล่างเพื่อคุยกับเจ้าหน้าที่ได้เลยค่ะ",
		model.LanguageEnglish: "This topic is best discussed with a care professional. Tap below to talk to our staff.",
	},
	ReasonComplexLanguage: {
		model.LanguageThai:    "คำถามของคุณมีรายละเอียดค่อนข้างมาก เจ้าหน้าที่ของเราช่วยตอบได้ละเอียดกว่าค่ะ",
		model.LanguageEnglish: "Your question has a lot of detail. Our staff can give you a more thorough answer directly.",
	},
	ReasonLongConversation: {
		model.LanguageThai:    "คุยกันมาสักพักแล้ว ถ้ายังไม่คลายกังวล ลองคุยกับเจ้าหน้าที่ของเราดูนะคะ",
		model.LanguageEnglish: "We have been chatting for a while. If you still have concerns, our staff are happy to help.",
	},
}

func displayMessage(r Reason, lang model.Language) string {
	if byLang, ok := displayMessages[r]; ok {
		if msg, ok := byLang[lang]; ok {
			return msg
		}
		return byLang[model.LanguageEnglish]
	}
	return ""
}
