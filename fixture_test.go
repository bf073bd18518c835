package pgf

// buildFoodGrammar constructs the synthetic fixture from spec.md §8
// Scenario 1: abstract name "Food", categories {Comment, Item}, functions
// {Pred: Comment, This: Item}, one language "FoodEng", sequences
// [[SymKS "is"], [SymKS "this"]], CncCats Comment->[0,1), Item->[1,2).
func buildFoodGrammar() *Pgf {
	pred := &AbstractFun{Name: "Pred", Type: GroundType("Comment")}
	this := &AbstractFun{Name: "This", Type: GroundType("Item")}

	abstract := Abstract{
		Funs:     map[CID]*AbstractFun{"Pred": pred, "This": this},
		FunOrder: []CID{"Pred", "This"},
		Cats: map[CID]*AbstractCat{
			"Comment": {Name: "Comment", Funs: []FunRef{{Index: 0, Name: "Pred"}}},
			"Item":    {Name: "Item", Funs: []FunRef{{Index: 0, Name: "This"}}},
		},
		CatOrder: []CID{"Comment", "Item"},
	}

	cnc := &Concrete{
		Name: "FoodEng",
		Productions: map[int32][]Production{
			0: {Apply{Fid: 0}},
			1: {Apply{Fid: 1}},
		},
		CncFuns: []CncFun{
			{Name: "Pred", Lins: []int32{0}},
			{Name: "This", Lins: []int32{1}},
		},
		Sequences: [][]Symbol{
			{SymKS{Token: "is"}},
			{SymKS{Token: "this"}},
		},
		CncCats: map[CID]CncCat{
			"Comment": {Start: 0, End: 1},
			"Item":    {Start: 1, End: 2},
		},
		CncCatOrder: []CID{"Comment", "Item"},
		TotalCats:   2,
	}

	return &Pgf{
		AbsName:   "Food",
		StartCat:  "Comment",
		Abstract:  abstract,
		Concretes: map[Language]*Concrete{"FoodEng": cnc},
		LangOrder: []Language{"FoodEng"},
	}
}
