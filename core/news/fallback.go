package news

import "time"

// Fallback returns the fixed news items substituted when the remote store is
// unreachable, so the public site never renders empty. Pre-sorted by date
// descending; these records never round-trip to storage.
func Fallback(now time.Time) []News {
	return []News{
		{
			ID:        "fallback-1",
			Title:     "Xalqaro Maqom Festivali",
			Category:  "Festival",
			Excerpt:   "Maktabimiz o'quvchilari xalqaro festivalda qatnashdi va yuqori natijalar ko'rsatdi.",
			Content:   "Farg'ona maqom maktab-internati o'quvchilari Toshkentda o'tkazilgan xalqaro maqom festivalida faol ishtirok etdilar.",
			Date:      "2025-10-25",
			Author:    "Admin",
			CreatedAt: now,
		},
		{
			ID:        "fallback-2",
			Title:     "Yangi O'quv Yili Boshlandi",
			Category:  "Ta'lim",
			Excerpt:   "2025-2026 o'quv yili tantanali ochilish marosimi bo'lib o'tdi.",
			Content:   "Maktabimizda yangi o'quv yili tantanali ravishda ochildi.",
			Date:      "2025-10-21",
			Author:    "Admin",
			CreatedAt: now,
		},
		{
			ID:        "fallback-3",
			Title:     "Ustozlar Konserti",
			Category:  "Konsert",
			Excerpt:   "Maktab o'qituvchilari tomonidan maxsus konsert dasturi taqdim etildi.",
			Content:   "Maktabimiz o'qituvchilari tomonidan \"Maqom san'ati sirlari\" nomli maxsus konsert dasturi taqdim etildi.",
			Date:      "2025-10-17",
			Author:    "Admin",
			CreatedAt: now,
		},
	}
}
