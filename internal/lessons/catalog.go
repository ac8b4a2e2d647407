package lessons

// Section slugs, in sidebar order.
const (
	SlugIntro  = "intro"
	SlugSyntax = "syntax"
	SlugLayout = "layout"
	SlugState  = "state"
	SlugCharts = "charts"
	SlugFiles  = "files"
	SlugParams = "params"
	SlugDeploy = "deploy"
)

// QuickLinks are shown in the sidebar under the section list.
var QuickLinks = []Link{
	{Label: "Homepage", URL: "https://streamlit.io"},
	{Label: "Docs", URL: "https://docs.streamlit.io"},
	{Label: "Community Cloud", URL: "https://streamlit.io/cloud"},
	{Label: "GitHub", URL: "https://github.com/streamlit/streamlit"},
}

// Link is a labelled external URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Catalog returns the eight tutorial sections in order.
func Catalog() []Section {
	return []Section{
		{
			Slug:    SlugIntro,
			Number:  1,
			Title:   "Introduction & getting started",
			Icon:    "🧊",
			Summary: "What Streamlit is, what it is good at, and how to install it.",
			Body: "**Streamlit** is an open-source framework for building data apps and dashboards " +
				"**in pure Python**, **very quickly**. No HTML, CSS or JavaScript is needed: a plain " +
				"script becomes an interactive app.\n\n" +
				"**Highlights**\n\n" +
				"- Widgets, charts and layout in a few lines of code\n" +
				"- File upload and download, forms and session state\n" +
				"- Fast recomputation through `st.cache_data` caching\n" +
				"- One-click deployment from GitHub on **Community Cloud**\n\n" +
				"### Install & hello world\n\nTry it locally:\n",
			Snippets: []Snippet{{
				Title:    "Install and run",
				Language: "bash",
				Code: `# install
pip install streamlit

# run the built-in demo
streamlit hello

# create a new app
echo "import streamlit as st\nst.title('Hello, Streamlit!')" > app.py
streamlit run app.py
`,
			}},
		},
		{
			Slug:    SlugSyntax,
			Number:  2,
			Title:   "Core syntax",
			Icon:    "🔤",
			Summary: "Output functions, input widgets, tabs and expanders.",
			Body: "Learn the most common functions and patterns with small exercises.\n\n" +
				"- Output: `st.write`, `st.markdown`, `st.title` …\n" +
				"- Widgets: `st.button`, `st.slider`, `st.selectbox`, `st.text_input` …\n" +
				"- Layout: `st.columns`, `st.tabs`, `st.expander`\n",
			Snippets: []Snippet{
				{
					Title:    "Basic output and widgets",
					Language: "python",
					Code: `import streamlit as st

st.title("Basic example")
name = st.text_input("Enter your name")
level = st.slider("Difficulty", 1, 10, 3)
if st.button("Say hello"):
    st.success(f"Hello, {name}! Starting at difficulty {level}.")
`,
				},
				{
					Title:    "Layout example",
					Language: "python",
					Code: `t1, t2 = st.tabs(["Tab A", "Tab B"])
with t1:
    st.write("Tab A")
with t2:
    st.write("Tab B")

with st.expander("Details"):
    st.write("More explanation")
`,
				},
			},
		},
		{
			Slug:    SlugLayout,
			Number:  3,
			Title:   "Layout & components",
			Icon:    "📐",
			Summary: "Column grids, metric tiles, tables and callouts.",
			Body:    "Combine column grids, containers, buttons and callouts into a clean UI.\n",
			Snippets: []Snippet{{
				Title:    "Layout snippet",
				Language: "python",
				Code: `col1, col2, col3 = st.columns(3)
with col1: st.metric("A", 100)
with col2: st.metric("B", "▲ 7%")
with col3: st.metric("C", 42)

left, right = st.columns([2,1])
with left: st.dataframe(df)
with right: st.info("Info block")
`,
			}},
		},
		{
			Slug:    SlugState,
			Number:  4,
			Title:   "State & caching",
			Icon:    "🧠",
			Summary: "Session state that survives reruns, and caching of expensive work.",
			Body: "- **Session state**: `st.session_state` keeps values across user interactions\n" +
				"- **Caching**: cache expensive computations and data loads with " +
				"`@st.cache_data` (data) or `@st.cache_resource` (resources)\n",
			Snippets: []Snippet{
				{
					Title:    "Session state",
					Language: "python",
					Code: `if "counter" not in st.session_state:
    st.session_state.counter = 0

if st.button("Increment"):
    st.session_state.counter += 1

st.write("Counter:", st.session_state.counter)
`,
				},
				{
					Title:    "Caching",
					Language: "python",
					Code: `import time
@st.cache_data
def slow_fn(n):
    time.sleep(2)
    return n*n
`,
				},
			},
		},
		{
			Slug:    SlugCharts,
			Number:  5,
			Title:   "Data visualisation",
			Icon:    "📊",
			Summary: "Built-in line charts and Altair charts over a sample dataset.",
			Body:    "Built-in charts work well together with libraries such as Altair or Plotly.\n",
			Snippets: []Snippet{{
				Title:    "Chart snippet",
				Language: "python",
				Code: `st.line_chart(df)  # simple
# Altair example
import altair as alt
chart = alt.Chart(df).mark_bar().encode(x="x", y="y")
st.altair_chart(chart, use_container_width=True)
`,
			}},
		},
		{
			Slug:    SlugFiles,
			Number:  6,
			Title:   "Files, images & forms",
			Icon:    "📁",
			Summary: "CSV upload, remote images and a validated contact form.",
			Body:    "Upload a CSV file, show an image, and submit a form with required fields.\n",
			Snippets: []Snippet{{
				Title:    "File and form snippet",
				Language: "python",
				Code: `up = st.file_uploader("CSV", type=["csv"])
if up:
    df = pd.read_csv(up)
    st.dataframe(df)

with st.form("f"):
    name = st.text_input("Name*")
    ok = st.form_submit_button("Submit")
`,
			}},
		},
		{
			Slug:    SlugParams,
			Number:  7,
			Title:   "Multipage & URL parameters",
			Icon:    "🧭",
			Summary: "The pages/ folder convention and reading or writing query parameters.",
			Body: "- **Multipage**: create a `pages/` folder at the project root and add `.py` files; " +
				"each one becomes a page automatically.\n" +
				"- **Query parameters**: read and write URL parameters with `st.query_params`\n",
			Snippets: []Snippet{
				{
					Title:    "URL parameters",
					Language: "python",
					Code: `# read
qp = st.query_params
st.write(dict(qp))

# write / update
st.query_params.update({"tab": "overview"})
st.rerun()
`,
				},
				{
					Title:    "Multipage layout",
					Language: "text",
					Code: `my_app/
├─ app.py            # main
└─ pages/
   ├─ 1_data_tab.py
   └─ 2_model_tab.py
# -> the pages show up in the sidebar automatically.
`,
				},
			},
		},
		{
			Slug:    SlugDeploy,
			Number:  8,
			Title:   "Deployment (Community Cloud)",
			Icon:    "🚀",
			Summary: "Publishing the app from GitHub and declaring dependencies.",
			Body: "**The easiest way to deploy**\n\n" +
				"1. Push the app file and `requirements.txt` to GitHub.\n" +
				"2. Sign in to [streamlit.io/cloud](https://streamlit.io/cloud) with your **GitHub** account.\n" +
				"3. **Create app** → pick the repo, branch and entry point → **Deploy**\n\n" +
				"**Tips**\n\n" +
				"- Declare dependencies in `requirements.txt` (for example streamlit, pandas, numpy, altair)\n" +
				"- If the app is slow, cache with `@st.cache_data` / `@st.cache_resource`\n" +
				"- Logs, restarts and secrets are managed from the app settings in Cloud\n",
			Snippets: []Snippet{{
				Title:    "requirements.txt example",
				Language: "text",
				Code: `streamlit>=1.29
pandas>=1.5
numpy>=1.23
altair>=5.0
`,
			}},
		},
	}
}
