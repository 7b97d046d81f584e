package refdata

// Refs bundles every loaded reference index. It is built once per run before
// quest processing starts and is read-only afterwards.
type Refs struct {
	Items  *ItemIndex
	Tasks  TaskIndex
	Locale *LocaleMap
	POIs   POIIndex
	Vitals VitalsIndex
}

// EmptyRefs returns a Refs with every index present but empty, so resolvers
// never see a nil map.
func EmptyRefs() Refs {
	return Refs{
		Items:  NewItemIndex(),
		Tasks:  TaskIndex{},
		Locale: NewLocaleMap(),
		POIs:   POIIndex{},
		Vitals: VitalsIndex{},
	}
}
