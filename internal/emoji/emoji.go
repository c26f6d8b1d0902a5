// Package emoji maps unicode emoji glyphs to the Discord shortcode names
// DCE records for non-custom reactions. The index covers the glyphs seen in
// practice on mirrored guilds; a miss resolves to the empty code, which is
// what the external format records for unindexed emoji.
package emoji

var index = map[string]string{
	"😀": "grinning",
	"😁": "grin",
	"😂": "joy",
	"🤣": "rofl",
	"😃": "smiley",
	"😄": "smile",
	"😅": "sweat_smile",
	"😆": "laughing",
	"😉": "wink",
	"😊": "blush",
	"😋": "yum",
	"😎": "sunglasses",
	"😍": "heart_eyes",
	"😘": "kissing_heart",
	"🙂": "slight_smile",
	"🙃": "upside_down",
	"🤔": "thinking",
	"🤨": "raised_eyebrow",
	"😐": "neutral_face",
	"😑": "expressionless",
	"🙄": "rolling_eyes",
	"😏": "smirk",
	"😣": "persevere",
	"😥": "disappointed_relieved",
	"😮": "open_mouth",
	"🤐": "zipper_mouth",
	"😯": "hushed",
	"😪": "sleepy",
	"😫": "tired_face",
	"🥱": "yawning_face",
	"😴": "sleeping",
	"😌": "relieved",
	"😛": "stuck_out_tongue",
	"😜": "stuck_out_tongue_winking_eye",
	"🤤": "drooling_face",
	"😒": "unamused",
	"😓": "sweat",
	"😔": "pensive",
	"😕": "confused",
	"😖": "confounded",
	"🙁": "slight_frown",
	"😲": "astonished",
	"😞": "disappointed",
	"😟": "worried",
	"😤": "triumph",
	"😢": "cry",
	"😭": "sob",
	"😦": "frowning",
	"😧": "anguished",
	"😨": "fearful",
	"😩": "weary",
	"🤯": "exploding_head",
	"😬": "grimacing",
	"😰": "cold_sweat",
	"😱": "scream",
	"🥵": "hot_face",
	"🥶": "cold_face",
	"😳": "flushed",
	"🤪": "zany_face",
	"😵": "dizzy_face",
	"🥴": "woozy_face",
	"😡": "rage",
	"😠": "angry",
	"🤬": "face_with_symbols_over_mouth",
	"😷": "mask",
	"🤒": "thermometer_face",
	"🤕": "head_bandage",
	"🤢": "nauseated_face",
	"🤮": "face_vomiting",
	"🤧": "sneezing_face",
	"😇": "innocent",
	"🥳": "partying_face",
	"🥺": "pleading_face",
	"🤠": "cowboy",
	"🤡": "clown",
	"🤥": "lying_face",
	"🤫": "shushing_face",
	"🤭": "face_with_hand_over_mouth",
	"🧐": "face_with_monocle",
	"🤓": "nerd",
	"😈": "smiling_imp",
	"👿": "imp",
	"💀": "skull",
	"☠️": "skull_crossbones",
	"👻": "ghost",
	"👽": "alien",
	"🤖": "robot",
	"💩": "poop",
	"🔥": "fire",
	"✨": "sparkles",
	"🌟": "star2",
	"⭐": "star",
	"💥": "boom",
	"💯": "100",
	"💢": "anger",
	"💤": "zzz",
	"👋": "wave",
	"🤚": "raised_back_of_hand",
	"✋": "raised_hand",
	"🖖": "vulcan",
	"👌": "ok_hand",
	"🤌": "pinched_fingers",
	"✌️": "v",
	"🤞": "fingers_crossed",
	"🤟": "love_you_gesture",
	"🤘": "metal",
	"🤙": "call_me",
	"👈": "point_left",
	"👉": "point_right",
	"👆": "point_up_2",
	"👇": "point_down",
	"☝️": "point_up",
	"👍": "thumbsup",
	"👎": "thumbsdown",
	"✊": "fist",
	"👊": "punch",
	"🤛": "left_facing_fist",
	"🤜": "right_facing_fist",
	"👏": "clap",
	"🙌": "raised_hands",
	"👐": "open_hands",
	"🤲": "palms_up_together",
	"🤝": "handshake",
	"🙏": "pray",
	"💪": "muscle",
	"👀": "eyes",
	"👁️": "eye",
	"🧠": "brain",
	"❤️": "heart",
	"🧡": "orange_heart",
	"💛": "yellow_heart",
	"💚": "green_heart",
	"💙": "blue_heart",
	"💜": "purple_heart",
	"🖤": "black_heart",
	"🤍": "white_heart",
	"🤎": "brown_heart",
	"💔": "broken_heart",
	"❣️": "heart_exclamation",
	"💕": "two_hearts",
	"💞": "revolving_hearts",
	"💓": "heartbeat",
	"💗": "heartpulse",
	"💖": "sparkling_heart",
	"💘": "cupid",
	"💝": "gift_heart",
	"🎉": "tada",
	"🎊": "confetti_ball",
	"🎈": "balloon",
	"🎂": "birthday",
	"🎁": "gift",
	"🏆": "trophy",
	"🥇": "first_place",
	"🥈": "second_place",
	"🥉": "third_place",
	"⚽": "soccer",
	"🏀": "basketball",
	"🎮": "video_game",
	"🎲": "game_die",
	"🎯": "dart",
	"🍕": "pizza",
	"🍔": "hamburger",
	"🍟": "fries",
	"🌮": "taco",
	"🍿": "popcorn",
	"☕": "coffee",
	"🍺": "beer",
	"🍻": "beers",
	"🥂": "champagne_glass",
	"🍷": "wine_glass",
	"🚀": "rocket",
	"✈️": "airplane",
	"🚗": "red_car",
	"⏰": "alarm_clock",
	"⌛": "hourglass",
	"🌈": "rainbow",
	"☀️": "sunny",
	"🌙": "crescent_moon",
	"🌊": "ocean",
	"❄️": "snowflake",
	"⚡": "zap",
	"💡": "bulb",
	"📌": "pushpin",
	"📎": "paperclip",
	"✅": "white_check_mark",
	"☑️": "ballot_box_with_check",
	"✔️": "heavy_check_mark",
	"❌": "x",
	"❎": "negative_squared_cross_mark",
	"❓": "question",
	"❗": "exclamation",
	"⚠️": "warning",
	"🚫": "no_entry_sign",
	"🔞": "underage",
	"💰": "moneybag",
	"💸": "money_with_wings",
	"📈": "chart_with_upwards_trend",
	"📉": "chart_with_downwards_trend",
	"🗿": "moai",
	"🤷": "person_shrugging",
	"🤦": "person_facepalming",
	"🫡": "saluting_face",
	"🫠": "melting_face",
	"🐸": "frog",
	"🐀": "rat",
	"🐍": "snake",
	"🦀": "crab",
	"🐐": "goat",
	"🦆": "duck",
	"🐢": "turtle",
	"🐒": "monkey",
	"🦍": "gorilla",
	"🐕": "dog2",
	"🐈": "cat2",
	"🔴": "red_circle",
	"🟢": "green_circle",
	"🔵": "blue_circle",
	"🟡": "yellow_circle",
	"1️⃣": "one",
	"2️⃣": "two",
	"3️⃣": "three",
	"🆗": "ok",
	"🆒": "cool",
	"🆕": "new",
}

// Shortcode returns the shortcode for a unicode emoji glyph, or the empty
// string when the glyph is not indexed.
func Shortcode(glyph string) string {
	return index[glyph]
}
