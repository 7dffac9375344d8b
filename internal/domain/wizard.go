package domain

import (
	"fmt"
	"strings"
	"time"
)

// WizardStep is the furthest completed step of a booking selection
type WizardStep int

const (
	StepEmpty WizardStep = iota
	StepPetSelected
	StepCategorySelected
	StepPackageSelected
	StepSizeSelected
	StepDateSelected
	StepEndDateSelected
	StepSubmittable // time selected
)

var wizardStepNames = map[WizardStep]string{
	StepEmpty:            "Empty",
	StepPetSelected:      "PetSelected",
	StepCategorySelected: "CategorySelected",
	StepPackageSelected:  "PackageSelected",
	StepSizeSelected:     "SizeSelected",
	StepDateSelected:     "DateSelected",
	StepEndDateSelected:  "EndDateSelected",
	StepSubmittable:      "Submittable",
}

func (s WizardStep) String() string {
	if name, ok := wizardStepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("WizardStep(%d)", int(s))
}

// PackageTraits describes which optional steps a selected package needs
type PackageTraits struct {
	RequiresSize    bool
	RequiresEndDate bool
}

// BookingSelection is the forward-only booking wizard.
// A field can only be selected once every upstream field is set; changing a field
// clears everything downstream of it. Re-selecting the current value is a no-op.
type BookingSelection struct {
	PetID    string
	Species  Species
	Category Category

	ServiceID string
	Traits    PackageTraits

	Size    *SizeTier
	Date    *time.Time
	EndDate *time.Time
	Time    string

	AddonIDs []string
	Notes    *string
}

// Clone returns a deep copy of the selection
func (s *BookingSelection) Clone() *BookingSelection {
	c := *s
	if s.Size != nil {
		v := *s.Size
		c.Size = &v
	}
	if s.Date != nil {
		v := *s.Date
		c.Date = &v
	}
	if s.EndDate != nil {
		v := *s.EndDate
		c.EndDate = &v
	}
	if s.Notes != nil {
		v := *s.Notes
		c.Notes = &v
	}
	if s.AddonIDs != nil {
		c.AddonIDs = append([]string(nil), s.AddonIDs...)
	}
	return &c
}

// Step returns the furthest step reached
func (s *BookingSelection) Step() WizardStep {
	if s.PetID == "" {
		return StepEmpty
	}
	if s.Category == "" {
		return StepPetSelected
	}
	if s.ServiceID == "" {
		return StepCategorySelected
	}
	step := StepPackageSelected
	if s.Traits.RequiresSize {
		if s.Size == nil {
			return step
		}
		step = StepSizeSelected
	}
	if s.Date == nil {
		return step
	}
	step = StepDateSelected
	if s.Traits.RequiresEndDate {
		if s.EndDate == nil {
			return step
		}
		step = StepEndDateSelected
	}
	if s.Time == "" {
		return step
	}
	return StepSubmittable
}

// IsSubmittable returns true once every required field is selected
func (s *BookingSelection) IsSubmittable() bool {
	return s.Step() == StepSubmittable
}

// SelectPet sets the pet and clears every downstream field on change
func (s *BookingSelection) SelectPet(petID string, species Species) error {
	if petID == "" {
		return fmt.Errorf("%w: pet", ErrInvalidSelection)
	}
	if s.PetID == petID && s.Species == species {
		return nil
	}
	s.PetID = petID
	s.Species = species
	s.clearFromCategory()
	return nil
}

// SelectCategory sets the category and clears package, size, dates and time on change
func (s *BookingSelection) SelectCategory(category Category) error {
	if s.PetID == "" {
		return fmt.Errorf("%w: pet", ErrMissingSelection)
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: category %q", ErrInvalidSelection, category)
	}
	if s.Category == category {
		return nil
	}
	s.Category = category
	s.clearFromPackage()
	return nil
}

// SelectPackage sets the catalog entry and its traits
func (s *BookingSelection) SelectPackage(serviceID string, traits PackageTraits) error {
	if s.Category == "" {
		return fmt.Errorf("%w: category", ErrMissingSelection)
	}
	if serviceID == "" {
		return fmt.Errorf("%w: package", ErrInvalidSelection)
	}
	if s.ServiceID == serviceID && s.Traits == traits {
		return nil
	}
	s.ServiceID = serviceID
	s.Traits = traits
	s.clearFromSize()
	return nil
}

// SelectSize sets the size tier
func (s *BookingSelection) SelectSize(size SizeTier) error {
	if s.ServiceID == "" {
		return fmt.Errorf("%w: package", ErrMissingSelection)
	}
	if s.Size != nil && *s.Size == size {
		return nil
	}
	s.Size = &size
	s.clearFromDate()
	return nil
}

// SelectDate sets the appointment (or drop-off) date
func (s *BookingSelection) SelectDate(date time.Time) error {
	if s.ServiceID == "" {
		return fmt.Errorf("%w: package", ErrMissingSelection)
	}
	if s.Traits.RequiresSize && s.Size == nil {
		return fmt.Errorf("%w: size", ErrMissingSizeTier)
	}
	date = DateOnly(date)
	if s.Date != nil && s.Date.Equal(date) {
		return nil
	}
	s.Date = &date
	s.clearFromEndDate()
	return nil
}

// SelectEndDate sets the end of a boarding stay with a selectable end date.
// The end must be at least Boarding7DaysMinSpan days after the start.
func (s *BookingSelection) SelectEndDate(end time.Time) error {
	if s.Date == nil {
		return fmt.Errorf("%w: date", ErrMissingSelection)
	}
	if !s.Traits.RequiresEndDate {
		return fmt.Errorf("%w: end date is fixed by the package", ErrInvalidSelection)
	}
	end = DateOnly(end)
	if end.Before(s.Date.AddDate(0, 0, Boarding7DaysMinSpan)) {
		return fmt.Errorf("%w: end date must be at least %d days after start", ErrInvalidDateRange, Boarding7DaysMinSpan)
	}
	if s.EndDate != nil && s.EndDate.Equal(end) {
		return nil
	}
	s.EndDate = &end
	s.Time = ""
	return nil
}

// SelectTime sets the slot time (HH:MM, or the daycare label)
func (s *BookingSelection) SelectTime(slot string) error {
	if s.Date == nil {
		return fmt.Errorf("%w: date", ErrMissingSelection)
	}
	if s.Traits.RequiresEndDate && s.EndDate == nil {
		return fmt.Errorf("%w: end date", ErrMissingSelection)
	}
	if slot == "" {
		return fmt.Errorf("%w: time", ErrInvalidSelection)
	}
	s.Time = slot
	return nil
}

// SetAddons replaces the selected add-ons; add-ons do not take part in the step order
func (s *BookingSelection) SetAddons(ids []string) error {
	if s.PetID == "" {
		return fmt.Errorf("%w: pet", ErrMissingSelection)
	}
	if len(ids) > MaxAddonsPerAppointment {
		return fmt.Errorf("%w: too many add-ons", ErrInvalidSelection)
	}
	s.AddonIDs = UniqueIDs(ids)
	return nil
}

// SetNotes sets free-form notes for the appointment
func (s *BookingSelection) SetNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidSelection)
	}
	if notes == "" {
		s.Notes = nil
		return nil
	}
	s.Notes = &notes
	return nil
}

func (s *BookingSelection) clearFromCategory() {
	s.Category = ""
	s.clearFromPackage()
}

func (s *BookingSelection) clearFromPackage() {
	s.ServiceID = ""
	s.Traits = PackageTraits{}
	s.clearFromSize()
}

func (s *BookingSelection) clearFromSize() {
	s.Size = nil
	s.clearFromDate()
}

func (s *BookingSelection) clearFromDate() {
	s.Date = nil
	s.clearFromEndDate()
}

func (s *BookingSelection) clearFromEndDate() {
	s.EndDate = nil
	s.Time = ""
}

// UniqueIDs drops empty and repeated ids, keeping the first occurrence order
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
