package pet

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/rtdb"
)

const petsPath = "pets"

// Repository питомцы в документном хранилище.
// Основная схема: pets/{ownerId}/{petId}. Старые записи лежат плоско:
// pets/{petId} с полем ownerId. Обе схемы приводятся к domain.Pet.
type Repository struct {
	store rtdb.Store
}

// NewRepository создает новый экземпляр репозитория питомцев
func NewRepository(store rtdb.Store) *Repository {
	return &Repository{store: store}
}

// GetByID получает питомца владельца
func (r *Repository) GetByID(ctx context.Context, ownerID, petID string) (*domain.Pet, error) {
	// 1. Вложенная схема
	raw, err := r.store.Get(ctx, rtdb.Join(petsPath, ownerID, petID))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrStore, err)
	}
	if raw != nil {
		fields, err := rtdb.DecodeFields(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByID %s: %v", ErrDecode, petID, err)
		}
		return decodePet(petID, ownerID, fields), nil
	}

	// 2. Плоская схема, владелец должен совпадать
	raw, err = r.store.Get(ctx, rtdb.Join(petsPath, petID))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrStore, err)
	}
	if raw == nil {
		return nil, ErrPetNotFound
	}
	fields, err := rtdb.DecodeFields(raw)
	if err != nil || !isFlatPet(fields) || ownerOf(fields) != ownerID {
		return nil, ErrPetNotFound
	}
	return decodePet(petID, ownerID, fields), nil
}

// ListByOwner получает всех питомцев владельца из обеих схем
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Pet, error) {
	pets := make([]*domain.Pet, 0)
	seen := make(map[string]struct{})

	raw, err := r.store.Get(ctx, rtdb.Join(petsPath, ownerID))
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner: %v", ErrStore, err)
	}
	fields, err := rtdb.DecodeFields(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner %s: %v", ErrDecode, ownerID, err)
	}
	// Узел pets/{ownerId} может оказаться плоской записью питомца с таким же ключом
	if fields != nil && !isFlatPet(fields) {
		nested, err := rtdb.Children(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner %s: %v", ErrDecode, ownerID, err)
		}
		for _, node := range nested {
			petFields, err := rtdb.DecodeFields(node.Value)
			if err != nil {
				continue
			}
			pets = append(pets, decodePet(node.Key, ownerID, petFields))
			seen[node.Key] = struct{}{}
		}
	}

	flat, err := r.store.Query(ctx, petsPath, "ownerId", ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner: %v", ErrStore, err)
	}
	for _, node := range flat {
		if _, ok := seen[node.Key]; ok {
			continue
		}
		petFields, err := rtdb.DecodeFields(node.Value)
		if err != nil {
			continue
		}
		pets = append(pets, decodePet(node.Key, ownerID, petFields))
	}

	return pets, nil
}

// Save сохраняет питомца в основной (вложенной) схеме
func (r *Repository) Save(ctx context.Context, p *domain.Pet) error {
	doc := map[string]interface{}{
		"name":    p.Name,
		"species": string(p.Species),
	}
	if p.Size != nil {
		doc["size"] = string(*p.Size)
	}
	if err := r.store.Set(ctx, rtdb.Join(petsPath, p.OwnerID, p.ID), doc); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrStore, err)
	}
	return nil
}

func decodePet(id, ownerID string, f rtdb.Fields) *domain.Pet {
	p := &domain.Pet{
		ID:      id,
		OwnerID: ownerID,
		Name:    f.String("name", "petName", "pet"),
	}
	if species, ok := domain.ParseSpecies(f.String("species", "type")); ok {
		p.Species = species
	}
	if size, ok := domain.ParseSizeTier(f.String("size", "sizeTier")); ok {
		p.Size = &size
	}
	return p
}

func isFlatPet(f rtdb.Fields) bool {
	return ownerOf(f) != ""
}

func ownerOf(f rtdb.Fields) string {
	return f.String("ownerId", "userId", "owner")
}
