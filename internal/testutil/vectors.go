// Package testutil holds reference data shared by tests across packages.
package testutil

import "github.com/roach88/enigma/internal/engine"

// ReferenceInput is the plaintext every reference vector enciphers.
const ReferenceInput = "intheyearitookmydegreeofdoctorofmedicineoftheuniversityoflondonandproceededtonetleytogothroughthecour"

// PlugboardReference is the wiring for cables AH CO DE GZ IJ KM LQ NY PS TW.
const PlugboardReference = "hboedfzajimqkycslrpwuvtxng"

const identityWiring = "abcdefghijklmnopqrstuvwxyz"

// Vector is a known-good encipherment of ReferenceInput.
type Vector struct {
	Name        string
	Description string
	Settings    engine.Settings
	Output      string
	// Window is the rotor window after the whole input.
	Window string
}

func rotor(kind, offset, position string) engine.RotorSettings {
	return engine.RotorSettings{Type: kind, Offset: offset, Position: position}
}

// Vectors returns the reference vectors. The outputs agree with the
// CyberChef Enigma operation for the same settings.
func Vectors() []Vector {
	return []Vector{
		{
			Name:        "default",
			Description: "Standard settings.",
			Settings:    engine.StandardSettings(),
			Output:      "hqhkrbkxdumhpjaqaztvyphxvvugjmgsuxgrdcetjopnvmepyvalfwebngtxxsrtxohlarzofqeokdmxwbiknhrcgyrvayuyqpwip",
			Window:      "bfx",
		},
		{
			Name:        "rotors_iv_v_vi",
			Description: "Rotors IV, V and VI.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: identityWiring},
				RotorRight:  rotor("VI", "a", "a"),
				RotorMiddle: rotor("V", "a", "a"),
				RotorLeft:   rotor("IV", "a", "a"),
				Reflector:   engine.ReflectorSettings{Type: "B"},
			},
			Output: "nqgfbmwcugbgtbgwtopydvmpudaaglbhfakrjhvbcjjiwksgdokidxcvpukyxbadjmvvhymirucwuahynkvlnvtvemxgjmbmxfvsy",
			Window: "ahx",
		},
		{
			Name:        "rotors_vii_viii",
			Description: "Rotors VII and VIII with reflector C.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: identityWiring},
				RotorRight:  rotor("VIII", "a", "a"),
				RotorMiddle: rotor("VII", "a", "a"),
				RotorLeft:   rotor("I", "a", "a"),
				Reflector:   engine.ReflectorSettings{Type: "C"},
			},
			Output: "fzeevkqrbwfaccyrklctaaivftduzgyhiaafeuddtxbxlclgrhoreemdkdvdjwevpvgxzwcifgzjmjforxcdubjyxxljcyufcschs",
			Window: "ahx",
		},
		{
			Name:        "plugboard",
			Description: "Ten plugboard cables.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: PlugboardReference},
				RotorRight:  rotor("III", "a", "a"),
				RotorMiddle: rotor("II", "a", "a"),
				RotorLeft:   rotor("I", "a", "a"),
				Reflector:   engine.ReflectorSettings{Type: "B"},
			},
			Output: "pknzjdfvetomlrldwkfvfctxoktehkrpbkgpvpviscejkkbznghbywaeyptfkgvfowqqbhkjmzeperhsujtkbehggnfvctkesmgjs",
			Window: "bfx",
		},
		{
			Name:        "offsets",
			Description: "Ring offsets n, g, c.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: identityWiring},
				RotorRight:  rotor("III", "n", "a"),
				RotorMiddle: rotor("II", "g", "a"),
				RotorLeft:   rotor("I", "c", "a"),
				Reflector:   engine.ReflectorSettings{Type: "B"},
			},
			Output: "fhazfmubprsuuvqzennsvpluwqbwsitqkwevskionsjgdzznlvskwjevtanryjlffksgyrgfbwhhsmlukqicklyxgilykdykanxqj",
			Window: "bfx",
		},
		{
			Name:        "positions",
			Description: "Start positions n, g, c.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: identityWiring},
				RotorRight:  rotor("III", "a", "n"),
				RotorMiddle: rotor("II", "a", "g"),
				RotorLeft:   rotor("I", "a", "c"),
				Reflector:   engine.ReflectorSettings{Type: "B"},
			},
			Output: "qicyjlslcdacxwznizdnybjiiwollabxvvrbztgnrogliqvwnbcwhrsflavxrprctksmcoilifhcmioyijhfzmvpliqaoizfrhezu",
			Window: "ckk",
		},
		{
			Name:        "all_together",
			Description: "Plugboard, offsets and positions on rotors III, VII, VIII with reflector C.",
			Settings: engine.Settings{
				Plugboard:   engine.PlugboardSettings{Wiring: PlugboardReference},
				RotorRight:  rotor("VIII", "n", "d"),
				RotorMiddle: rotor("VII", "g", "i"),
				RotorLeft:   rotor("III", "c", "o"),
				Reflector:   engine.ReflectorSettings{Type: "C"},
			},
			Output: "krqdcobticmkcrrnabvlhskxxwlwrpqadncglpofclkkkgjojypohpqehbavnwbqkrtdkfyojczietbvmrefkdgzjkvqxqvpadydv",
			Window: "pra",
		},
	}
}
