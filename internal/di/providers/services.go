package providers

import (
	"github.com/samber/do/v2"

	"github.com/foodgramapp/foodgram-server/internal/logger"
	"github.com/foodgramapp/foodgram-server/internal/service"
	"github.com/foodgramapp/foodgram-server/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCatalogService provides the tag and ingredient catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, log.Logger), nil
}

// ProvideUserService provides the account service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecipeService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideRelationService provides the favorites, cart and subscription service.
func ProvideRelationService(i do.Injector) (*service.RelationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRelationService(storeHandle.Store, log.Logger), nil
}

// ProvideShoppingListService provides the shopping list service.
func ProvideShoppingListService(i do.Injector) (*service.ShoppingListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShoppingListService(storeHandle.Store, log.Logger), nil
}
