package models

type State struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

var NigerianStates = []State{
	{Name: "Abia", Cities: []string{"Aba", "Umuahia", "Arochukwu", "Ohafia"}},
	{Name: "Adamawa", Cities: []string{"Yola", "Mubi", "Numan", "Ganye"}},
	{Name: "Akwa Ibom", Cities: []string{"Uyo", "Eket", "Ikot Ekpene", "Oron"}},
	{Name: "Anambra", Cities: []string{"Awka", "Onitsha", "Nnewi", "Ekwulobia"}},
	{Name: "Bauchi", Cities: []string{"Bauchi", "Azare", "Misau", "Jama'are"}},
	{Name: "Bayelsa", Cities: []string{"Yenagoa", "Brass", "Sagbama", "Ogbia"}},
	{Name: "Benue", Cities: []string{"Makurdi", "Gboko", "Oturkpo", "Katsina-Ala"}},
	{Name: "Borno", Cities: []string{"Maiduguri", "Biu", "Bama", "Dikwa"}},
	{Name: "Cross River", Cities: []string{"Calabar", "Ugep", "Ogoja", "Ikom"}},
	{Name: "Delta", Cities: []string{"Asaba", "Warri", "Sapele", "Agbor"}},
	{Name: "Ebonyi", Cities: []string{"Abakaliki", "Afikpo", "Onueke", "Ishieke"}},
	{Name: "Edo", Cities: []string{"Benin City", "Auchi", "Uromi", "Ekpoma"}},
	{Name: "Ekiti", Cities: []string{"Ado-Ekiti", "Ikere-Ekiti", "Oye-Ekiti", "Ijero"}},
	{Name: "Enugu", Cities: []string{"Enugu", "Nsukka", "Oji River", "Awgu"}},
	{Name: "FCT - Abuja", Cities: []string{"Abuja", "Gwagwalada", "Kuje", "Bwari"}},
	{Name: "Gombe", Cities: []string{"Gombe", "Kumo", "Billiri", "Dukku"}},
	{Name: "Imo", Cities: []string{"Owerri", "Orlu", "Okigwe", "Oguta"}},
	{Name: "Jigawa", Cities: []string{"Dutse", "Hadejia", "Gumel", "Kazaure"}},
	{Name: "Kaduna", Cities: []string{"Kaduna", "Zaria", "Kafanchan", "Sabo"}},
	{Name: "Kano", Cities: []string{"Kano", "Wudil", "Rano", "Danbatta"}},
	{Name: "Katsina", Cities: []string{"Katsina", "Funtua", "Daura", "Malumfashi"}},
	{Name: "Kebbi", Cities: []string{"Birnin Kebbi", "Argungu", "Yelwa", "Jega"}},
	{Name: "Kogi", Cities: []string{"Lokoja", "Okene", "Idah", "Anyigba"}},
	{Name: "Kwara", Cities: []string{"Ilorin", "Offa", "Omu-Aran", "Jebba"}},
	{Name: "Lagos", Cities: []string{"Ikeja", "Lagos Island", "Lekki", "Ikorodu", "Badagry"}},
	{Name: "Nasarawa", Cities: []string{"Lafia", "Keffi", "Akwanga", "Nasarawa"}},
	{Name: "Niger", Cities: []string{"Minna", "Bida", "Suleja", "Kontagora"}},
	{Name: "Ogun", Cities: []string{"Abeokuta", "Ijebu-Ode", "Sango-Ota", "Sagamu"}},
	{Name: "Ondo", Cities: []string{"Akure", "Ondo City", "Owo", "Ikare"}},
	{Name: "Osun", Cities: []string{"Osogbo", "Ile-Ife", "Ilesa", "Ede"}},
	{Name: "Oyo", Cities: []string{"Ibadan", "Oyo", "Ogbomosho", "Saki"}},
	{Name: "Plateau", Cities: []string{"Jos", "Bukuru", "Pankshin", "Shendam"}},
	{Name: "Rivers", Cities: []string{"Port Harcourt", "Bonny", "Okrika", "Ahoada"}},
	{Name: "Sokoto", Cities: []string{"Sokoto", "Gwadabawa", "Tambuwal", "Wurno"}},
	{Name: "Taraba", Cities: []string{"Jalingo", "Wukari", "Bali", "Gembu"}},
	{Name: "Yobe", Cities: []string{"Damaturu", "Potiskum", "Gashua", "Nguru"}},
	{Name: "Zamfara", Cities: []string{"Gusau", "Kaura Namoda", "Talata Mafara", "Anka"}},
}
