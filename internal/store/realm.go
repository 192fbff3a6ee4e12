package store

// Realm is an isolated namespace of stored quizzes and histories. Each
// realm owns a distinct pair of storage keys, so language quizzes and
// custom-topic quizzes never intermix.
type Realm string

const (
	// RealmLanguage holds the programming-language quizzes, including
	// the seeded starter set.
	RealmLanguage Realm = "language"

	// RealmCustom holds user-generated custom-topic quizzes.
	RealmCustom Realm = "custom"
)

// Realms lists every known realm.
var Realms = []Realm{RealmLanguage, RealmCustom}

// QuizzesKey is the storage key for the realm's quiz collection.
func (r Realm) QuizzesKey() string {
	return "quizzes." + string(r)
}

// HistoryKey is the storage key for the realm's score-history map.
func (r Realm) HistoryKey() string {
	return "score_history." + string(r)
}

// Valid reports whether r names a known realm.
func (r Realm) Valid() bool {
	for _, known := range Realms {
		if r == known {
			return true
		}
	}
	return false
}
