// Package i18n holds the CLI string tables. Presentation only: workflows
// return structured data and never localized strings.
package i18n

import "github.com/kampanlabs/sawari/internal/client/prefs"

var tables = map[prefs.Language]map[string]string{
	prefs.LanguageEnglish: {
		"dashboard":        "Dashboard",
		"settings":         "Settings",
		"profile":          "Profile",
		"theme":            "Theme",
		"language":         "Language",
		"notifications":    "Notifications",
		"privacy":          "Privacy",
		"light":            "Light",
		"dark":             "Dark",
		"auto":             "Auto",
		"english":          "English",
		"nepali":           "Nepali",
		"signin":           "Sign In",
		"signup":           "Sign Up",
		"email":            "Email",
		"password":         "Password",
		"name":             "Name",
		"confirmPassword":  "Confirm Password",
		"currentLocation":  "Current Location",
		"latitude":         "Latitude",
		"longitude":        "Longitude",
		"accuracy":         "Accuracy",
		"altitude":         "Altitude",
		"fetchingLocation": "Fetching location...",
		"dateOfBirth":      "Date of Birth",
		"age":              "Age",
		"city":             "City",
		"emailVerified":    "Email Verified",
		"memberSince":      "Member Since",
		"signOut":          "Sign Out",
		"years":            "years",
		"yes":              "Yes",
		"no":               "No",
		"notSet":           "Not set",
		"loadingUserInfo":  "Loading user information...",
		"selectCity":       "Select City",
	},
	prefs.LanguageNepali: {
		"dashboard":        "ड्यासबोर्ड",
		"settings":         "सेटिङहरू",
		"profile":          "प्रोफाइल",
		"theme":            "थिम",
		"language":         "भाषा",
		"notifications":    "सूचनाहरू",
		"privacy":          "गोपनीयता",
		"light":            "उज्यालो",
		"dark":             "अँध्यारो",
		"auto":             "स्वचालित",
		"english":          "अंग्रेजी",
		"nepali":           "नेपाली",
		"signin":           "साइन इन",
		"signup":           "साइन अप",
		"email":            "इमेल",
		"password":         "पासवर्ड",
		"name":             "नाम",
		"confirmPassword":  "पासवर्ड पुष्टि गर्नुहोस्",
		"currentLocation":  "हालको स्थान",
		"latitude":         "अक्षांश",
		"longitude":        "देशान्तर",
		"accuracy":         "शुद्धता",
		"altitude":         "उचाइ",
		"fetchingLocation": "स्थान खोज्दै...",
		"dateOfBirth":      "जन्म मिति",
		"age":              "उमेर",
		"city":             "शहर",
		"emailVerified":    "इमेल प्रमाणित",
		"memberSince":      "सदस्यता मिति",
		"signOut":          "साइन आउट",
		"years":            "वर्ष",
		"yes":              "हो",
		"no":               "होइन",
		"notSet":           "सेट गरिएको छैन",
		"loadingUserInfo":  "प्रयोगकर्ता जानकारी लोड हुँदैछ...",
		"selectCity":       "शहर छान्नुहोस्",
	},
}

// T looks key up in the table for lang. Unknown languages fall back to
// English; unknown keys return the key itself so missing entries are visible
// rather than silent.
func T(lang prefs.Language, key string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[prefs.LanguageEnglish]
	}
	if s, ok := table[key]; ok {
		return s
	}
	if s, ok := tables[prefs.LanguageEnglish][key]; ok {
		return s
	}
	return key
}
