package world

// CharacterPatch carries the optional fields of a character update.
type CharacterPatch struct {
	Name        *string
	Personality *string
	Description *string
	LocationID  *int
}

// CreateCharacter validates the location and registers a character with the
// next free id.
func (s *State) CreateCharacter(name, personality, description string, locationID int) (Character, error) {
	if _, err := s.Root(); err != nil {
		return Character{}, err
	}
	if err := s.requireLocation(locationID); err != nil {
		return Character{}, err
	}
	ids := make([]int, len(s.Characters))
	for i, character := range s.Characters {
		ids[i] = character.ID
	}
	character := Character{
		ID:          NextID(ids),
		Name:        name,
		Personality: personality,
		Description: description,
		LocationID:  locationID,
	}
	s.Characters = append(s.Characters, character)
	return character, nil
}

// UpdateCharacter applies the supplied fields after validating any new location.
func (s *State) UpdateCharacter(id int, patch CharacterPatch) (Character, error) {
	index := s.characterIndex(id)
	if index == -1 {
		return Character{}, notFound("character", id)
	}
	if patch.LocationID != nil {
		if err := s.requireLocation(*patch.LocationID); err != nil {
			return Character{}, err
		}
	}
	character := &s.Characters[index]
	if patch.Name != nil {
		character.Name = *patch.Name
	}
	if patch.Personality != nil {
		character.Personality = *patch.Personality
	}
	if patch.Description != nil {
		character.Description = *patch.Description
	}
	if patch.LocationID != nil {
		character.LocationID = *patch.LocationID
	}
	return *character, nil
}

// DeleteCharacter removes a character. Plots keep referencing its id.
func (s *State) DeleteCharacter(id int) (Character, error) {
	index := s.characterIndex(id)
	if index == -1 {
		return Character{}, notFound("character", id)
	}
	removed := s.Characters[index]
	s.Characters = append(s.Characters[:index:index], s.Characters[index+1:]...)
	return removed, nil
}

// Character returns one character by id.
func (s *State) Character(id int) (Character, error) {
	index := s.characterIndex(id)
	if index == -1 {
		return Character{}, notFound("character", id)
	}
	return s.Characters[index], nil
}

// ListCharacters returns the registry in insertion order.
func (s *State) ListCharacters() []Character {
	if s == nil {
		return nil
	}
	return append([]Character(nil), s.Characters...)
}

func (s *State) characterIndex(id int) int {
	if s == nil {
		return -1
	}
	for i, character := range s.Characters {
		if character.ID == id {
			return i
		}
	}
	return -1
}
