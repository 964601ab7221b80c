package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"plateful/backend/internal/models"
	"plateful/backend/internal/repository"
)

// In-memory repository fakes. They mirror the ownership-scoping contract of
// the MongoDB implementations: a record owned by another user behaves
// exactly like a record that does not exist.

type fakeCollections struct {
	collections map[string]*models.Collection
	items       map[string][]models.CollectionItem
}

func newFakeCollections() *fakeCollections {
	return &fakeCollections{
		collections: map[string]*models.Collection{},
		items:       map[string][]models.CollectionItem{},
	}
}

func (f *fakeCollections) Create(_ context.Context, c *models.Collection) (*models.Collection, error) {
	c.ID = primitive.NewObjectID()
	f.collections[c.ID.Hex()] = c
	return c, nil
}

func (f *fakeCollections) ListByUser(_ context.Context, userID string) ([]repository.CollectionWithCount, error) {
	result := make([]repository.CollectionWithCount, 0)
	for id, c := range f.collections {
		if c.UserID == userID {
			result = append(result, repository.CollectionWithCount{Collection: *c, ItemCount: len(f.items[id])})
		}
	}
	return result, nil
}

func (f *fakeCollections) GetByID(_ context.Context, userID, id string) (*models.Collection, error) {
	c, ok := f.collections[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCollections) Update(ctx context.Context, userID, id string, fields map[string]any) (*models.Collection, error) {
	c, err := f.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name, ok := fields["name"].(string); ok {
		c.Name = name
	}
	if desc, ok := fields["description"].(string); ok {
		c.Description = desc
	}
	if color, ok := fields["color"].(string); ok {
		c.Color = color
	}
	return c, nil
}

func (f *fakeCollections) Delete(ctx context.Context, userID, id string) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.collections, id)
	delete(f.items, id)
	return nil
}

func (f *fakeCollections) AddItem(ctx context.Context, userID, collectionID string, item *models.CollectionItem) (*models.CollectionItem, error) {
	parent, err := f.GetByID(ctx, userID, collectionID)
	if err != nil {
		return nil, err
	}
	maxOrder := 0
	for _, existing := range f.items[collectionID] {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	item.ID = primitive.NewObjectID()
	item.CollectionID = parent.ID
	item.Order = maxOrder + 1
	f.items[collectionID] = append(f.items[collectionID], *item)
	return item, nil
}

func (f *fakeCollections) ListItems(ctx context.Context, userID, collectionID string) ([]models.CollectionItem, error) {
	if _, err := f.GetByID(ctx, userID, collectionID); err != nil {
		return nil, err
	}
	items := f.items[collectionID]
	if items == nil {
		items = make([]models.CollectionItem, 0)
	}
	return items, nil
}

func (f *fakeCollections) RemoveItem(ctx context.Context, userID, collectionID, itemID string) error {
	if _, err := f.GetByID(ctx, userID, collectionID); err != nil {
		return err
	}
	items := f.items[collectionID]
	for i, item := range items {
		if item.ID.Hex() == itemID {
			f.items[collectionID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCollections) RemoveItemByRecipe(ctx context.Context, userID, collectionID string, recipeID int) error {
	if _, err := f.GetByID(ctx, userID, collectionID); err != nil {
		return err
	}
	items := f.items[collectionID]
	for i, item := range items {
		if item.RecipeID == recipeID {
			f.items[collectionID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type planKey struct {
	userID    string
	weekStart string
}

type fakeMealPlans struct {
	plans map[planKey]*models.MealPlan
	items map[string][]models.MealPlanItem
}

func newFakeMealPlans() *fakeMealPlans {
	return &fakeMealPlans{
		plans: map[planKey]*models.MealPlan{},
		items: map[string][]models.MealPlanItem{},
	}
}

func (f *fakeMealPlans) GetByWeek(_ context.Context, userID, weekStart string) (*models.MealPlan, []models.MealPlanItem, error) {
	plan, ok := f.plans[planKey{userID, weekStart}]
	if !ok {
		return nil, nil, nil
	}
	items := f.items[plan.ID.Hex()]
	if items == nil {
		items = make([]models.MealPlanItem, 0)
	}
	return plan, items, nil
}

func (f *fakeMealPlans) AddItem(_ context.Context, userID, weekStart string, item *models.MealPlanItem) (*models.MealPlanItem, error) {
	key := planKey{userID, weekStart}
	plan, ok := f.plans[key]
	if !ok {
		plan = &models.MealPlan{ID: primitive.NewObjectID(), UserID: userID, WeekStart: weekStart}
		f.plans[key] = plan
	}
	maxOrder := 0
	for _, existing := range f.items[plan.ID.Hex()] {
		if existing.DayOfWeek == item.DayOfWeek && existing.MealType == item.MealType && existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	item.ID = primitive.NewObjectID()
	item.MealPlanID = plan.ID
	item.Order = maxOrder + 1
	f.items[plan.ID.Hex()] = append(f.items[plan.ID.Hex()], *item)
	return item, nil
}

func (f *fakeMealPlans) RemoveItem(_ context.Context, userID, weekStart, itemID string) error {
	plan, ok := f.plans[planKey{userID, weekStart}]
	if !ok {
		return repository.ErrNotFound
	}
	items := f.items[plan.ID.Hex()]
	for i, item := range items {
		if item.ID.Hex() == itemID {
			f.items[plan.ID.Hex()] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeFavorites struct {
	byUser map[string][]models.FavoriteRecipe
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{byUser: map[string][]models.FavoriteRecipe{}}
}

func (f *fakeFavorites) List(_ context.Context, userID string) ([]models.FavoriteRecipe, error) {
	favorites := f.byUser[userID]
	if favorites == nil {
		favorites = make([]models.FavoriteRecipe, 0)
	}
	return favorites, nil
}

func (f *fakeFavorites) Add(_ context.Context, userID string, recipeID int) (*models.FavoriteRecipe, error) {
	for _, existing := range f.byUser[userID] {
		if existing.RecipeID == recipeID {
			return nil, repository.ErrDuplicate
		}
	}
	favorite := models.FavoriteRecipe{ID: primitive.NewObjectID(), UserID: userID, RecipeID: recipeID}
	f.byUser[userID] = append(f.byUser[userID], favorite)
	return &favorite, nil
}

func (f *fakeFavorites) Remove(_ context.Context, userID string, recipeID int) error {
	favorites := f.byUser[userID]
	for i, existing := range favorites {
		if existing.RecipeID == recipeID {
			f.byUser[userID] = append(favorites[:i], favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeShoppingLists struct {
	lists map[string]*models.ShoppingList
}

func newFakeShoppingLists() *fakeShoppingLists {
	return &fakeShoppingLists{lists: map[string]*models.ShoppingList{}}
}

func (f *fakeShoppingLists) Create(_ context.Context, list *models.ShoppingList) (*models.ShoppingList, error) {
	list.ID = primitive.NewObjectID()
	if list.Items == nil {
		list.Items = make([]models.ShoppingListItem, 0)
	}
	f.lists[list.ID.Hex()] = list
	return list, nil
}

func (f *fakeShoppingLists) ListByUser(_ context.Context, userID string) ([]models.ShoppingList, error) {
	result := make([]models.ShoppingList, 0)
	for _, list := range f.lists {
		if list.UserID == userID {
			result = append(result, *list)
		}
	}
	return result, nil
}

func (f *fakeShoppingLists) GetByID(_ context.Context, userID, id string) (*models.ShoppingList, error) {
	list, ok := f.lists[id]
	if !ok || list.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return list, nil
}

func (f *fakeShoppingLists) Update(ctx context.Context, userID, id string, update *models.ShoppingList) (*models.ShoppingList, error) {
	list, err := f.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	list.Name = update.Name
	list.Items = update.Items
	if list.Items == nil {
		list.Items = make([]models.ShoppingListItem, 0)
	}
	list.Completed = update.Completed
	return list, nil
}

func (f *fakeShoppingLists) Delete(ctx context.Context, userID, id string) error {
	if _, err := f.GetByID(ctx, userID, id); err != nil {
		return err
	}
	delete(f.lists, id)
	return nil
}
