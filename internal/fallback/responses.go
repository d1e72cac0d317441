package fallback

import "github.com/SpaceC00kies/pranara-prototype-sub001/internal/model"

// responses holds the pre-written reply variants per topic and language.
// Every topic has at least one variant in every supported language; the
// emergency topic is handled by emergencyResponses instead.
var responses = map[model.Topic]map[model.Language][]string{
	model.TopicGeneral: {
		model.LanguageThai: {
			"ขอบคุณที่เล่าให้ฟังนะคะ ตอนนี้ระบบตอบอัตโนมัติขัดข้องชั่วคราว ลองเล่ารายละเอียดเพิ่มอีกนิดได้ไหมคะ",
			"ตอนนี้ปราณาราตอบได้ไม่เต็มที่ค่ะ ถ้าเป็นเรื่องสุขภาพของผู้สูงอายุ ลองถามใหม่อีกครั้งนะคะ",
		},
		model.LanguageEnglish: {
			"Thank you for sharing. Our assistant is briefly unavailable. Could you tell me a little more while we recover?",
			"I can only give a short answer right now. Please ask again in a moment, or add more detail.",
		},
	},
	model.TopicSleep: {
		model.LanguageThai: {
			"เรื่องการนอนของผู้สูงอายุ ลองจัดเวลานอนให้สม่ำเสมอ งดชากาแฟช่วงเย็น และให้ห้องนอนมืดและเงียบค่ะ",
			"ถ้านอนไม่หลับบ่อย ๆ ลองให้ท่านงีบกลางวันสั้นลง และเดินเบา ๆ ช่วงเย็นดูนะคะ",
		},
		model.LanguageEnglish: {
			"For sleep troubles, a steady bedtime, no caffeine after midday, and a dark quiet room usually help older adults.",
			"If sleepless nights keep happening, try shorter daytime naps and a gentle evening walk.",
		},
	},
	model.TopicDiet: {
		model.LanguageThai: {
			"สำหรับอาหารผู้สูงอายุ เน้นโปรตีนย่อยง่าย ผักผลไม้ และดื่มน้ำให้พอ แบ่งมื้อเล็ก ๆ หลายมื้อได้ค่ะ",
			"ถ้าท่านเบื่ออาหาร ลองปรับเมนูให้นิ่มขึ้น รสชาติอ่อนลง และชวนทานพร้อมกันทั้งครอบครัวนะคะ",
		},
		model.LanguageEnglish: {
			"For elder nutrition, favor easy-to-digest protein, vegetables, and enough water. Smaller, more frequent meals help.",
			"If appetite is low, softer textures and eating together as a family often make meals easier.",
		},
	},
	model.TopicExercise: {
		model.LanguageThai: {
			"การเดินช้า ๆ วันละ 20-30 นาที หรือรำไทเก๊ก เหมาะกับผู้สูงอายุมากค่ะ เริ่มทีละน้อยและหยุดพักเมื่อเหนื่อย",
		},
		model.LanguageEnglish: {
			"Gentle walking for 20-30 minutes a day, or tai chi, suits most older adults. Start small and rest when tired.",
		},
	},
	model.TopicMood: {
		model.LanguageThai: {
			"ความเหงาและความเครียดเป็นเรื่องที่พบบ่อยในผู้สูงอายุ การพูดคุยกับครอบครัวหรือเพื่อนบ้านสม่ำเสมอช่วยได้มากค่ะ",
			"ถ้ารู้สึกเศร้าต่อเนื่องหลายสัปดาห์ ควรปรึกษาแพทย์หรือนักจิตวิทยานะคะ ไม่ต้องเผชิญคนเดียว",
		},
		model.LanguageEnglish: {
			"Loneliness and stress are common in later life. Regular chats with family or neighbors go a long way.",
			"If sadness lasts several weeks, please talk to a doctor or counselor. You do not have to face it alone.",
		},
	},
	model.TopicMedication: {
		model.LanguageThai: {
			"เรื่องยาเป็นเรื่องสำคัญ ควรทานตามที่แพทย์สั่งอย่างเคร่งครัด ถ้าลืมทานหรือมีผลข้างเคียง ปรึกษาเภสัชกรหรือแพทย์ก่อนปรับยาเองนะคะ",
		},
		model.LanguageEnglish: {
			"Medication questions matter. Follow the prescribed schedule strictly, and ask a pharmacist or doctor before changing anything.",
		},
	},
	model.TopicMemory: {
		model.LanguageThai: {
			"อาการหลงลืมที่มากขึ้นควรให้แพทย์ประเมินค่ะ ระหว่างนี้การจดบันทึก ติดป้ายเตือน และกิจวัตรที่สม่ำเสมอช่วยได้",
		},
		model.LanguageEnglish: {
			"Increasing forgetfulness deserves a doctor's assessment. Meanwhile, notes, labels, and steady routines help day to day.",
		},
	},
}

// emergencyResponses always win for the emergency topic. The text names the
// Thai emergency medical number and instructs immediate professional contact.
var emergencyResponses = map[model.Language]string{
	model.LanguageThai:    "หากมีอาการฉุกเฉิน กรุณาโทร 1669 ทันที หรือพาไปโรงพยาบาลที่ใกล้ที่สุด อย่ารอคำตอบจากระบบนะคะ",
	model.LanguageEnglish: "If this is an emergency, call 1669 immediately or go to the nearest hospital. Do not wait for this chat.",
}

// Contextual suffixes appended by GetContextualResponse.
var longChatNotes = map[model.Language]string{
	model.LanguageThai:    "\n\nเราคุยกันมาสักพักแล้ว ถ้าต้องการคำตอบเฉพาะเจาะจง กดปุ่มติดต่อเจ้าหน้าที่ได้เลยค่ะ",
	model.LanguageEnglish: "\n\nWe have been chatting for a while. For more specific help, you can reach our staff with the contact button.",
}

var repeatNotes = map[model.Language]string{
	model.LanguageThai:    "\n\nถ้าคำตอบยังไม่ตรงคำถาม ลองเล่ารายละเอียดเพิ่ม หรือติดต่อเจ้าหน้าที่ของเราได้นะคะ",
	model.LanguageEnglish: "\n\nIf this doesn't quite answer your question, try adding detail or contact our staff directly.",
}
