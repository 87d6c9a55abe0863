package employee

import "time"

// Fallback returns the fixed employee records substituted when the remote
// store is unreachable. These never round-trip to storage.
func Fallback(now time.Time) []Employee {
	return []Employee{
		{
			ID:        "fallback-1",
			Name:      "Mamadjanov Ulug'bek Valiyevich",
			Role:      "Direktor",
			ImageURL:  "/img/direktor.png",
			Phone:     "+998 (73) 244-43-17",
			Email:     "farmaqommaktab@umail.uz",
			CreatedAt: now,
		},
		{
			ID:        "fallback-2",
			Name:      "Xudaynazarov Ulmasbek Kadirovich",
			Role:      "O'quv ishlari bo'yicha direktor o'rinbosari",
			ImageURL:  "/img/zam1.jpg",
			CreatedAt: now,
		},
		{
			ID:        "fallback-3",
			Name:      "Kadirov Farxod Fozilovich",
			Role:      "Ma'naviy-Ma'rifiy ishlar bo'yicha direktor o'rinbosari",
			ImageURL:  "/img/zam2.jpg",
			CreatedAt: now,
		},
		{
			ID:        "fallback-4",
			Name:      "Mamadjanova Xafiza Sobirjonova",
			Role:      "Kasbiy ta'lim bo'yicha direktor o'rinbosari",
			ImageURL:  "/img/zam3.png",
			CreatedAt: now,
		},
	}
}
