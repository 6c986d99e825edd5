package domain

// StarterFoods seeds an empty food database with common staples. Values are
// per 100 g.
var StarterFoods = []Food{
	{Name: "Chicken breast, cooked", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatsPer100g: 3.6},
	{Name: "White rice, cooked", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatsPer100g: 0.3},
	{Name: "Rolled oats", CaloriesPer100g: 379, ProteinPer100g: 13.2, CarbsPer100g: 67.7, FatsPer100g: 6.5},
	{Name: "Egg, whole", CaloriesPer100g: 143, ProteinPer100g: 12.6, CarbsPer100g: 0.7, FatsPer100g: 9.5},
	{Name: "Banana", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 22.8, FatsPer100g: 0.3},
	{Name: "Greek yogurt, plain", CaloriesPer100g: 97, ProteinPer100g: 9, CarbsPer100g: 3.9, FatsPer100g: 5},
	{Name: "Olive oil", CaloriesPer100g: 884, ProteinPer100g: 0, CarbsPer100g: 0, FatsPer100g: 100},
	{Name: "Broccoli", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 6.6, FatsPer100g: 0.4},
	{Name: "Salmon, raw", CaloriesPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatsPer100g: 13},
	{Name: "Almonds", CaloriesPer100g: 579, ProteinPer100g: 21.2, CarbsPer100g: 21.6, FatsPer100g: 49.9},
}
